package comment

import (
	"strings"
	"time"
)

// MaxContentLength 评论最大字符数
const MaxContentLength = 5000

// Comment 图书评论,只追加不修改
type Comment struct {
	ID        uint
	BookID    uint
	UserID    uint
	Username  string // 只读,由仓储填充
	Content   string
	CreatedAt time.Time
}

// NewComment 创建评论,内容会去掉首尾空白
func NewComment(userID, bookID uint, content string) *Comment {
	return &Comment{
		UserID:    userID,
		BookID:    bookID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
}
