package book

import (
	"strings"
	"time"
)

// UncategorizedName 没有分类的图书对外展示的分类名
const UncategorizedName = "Uncategorized"

// Category 图书分类
type Category struct {
	ID   uint
	Name string
}

// Tag 图书标签
type Tag struct {
	ID   uint
	Name string
}

// Book 图书实体(聚合根)
// 设计说明:
// 1. Category可以为空(分类被删除时置空)
// 2. Tags与图书是多对多关系
// 3. AuthorID关联发布图书的用户,只有作者本人可以修改/删除
// 4. CoverKey是封面在存储中的对象键,为空表示没有封面
type Book struct {
	ID          uint
	Title       string
	Description string // 富文本,原样存储
	CoverKey    string
	Category    *Category
	Tags        []Tag
	AuthorID    uint
	AuthorName  string // 只读,由仓储填充
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, description string, authorID uint, category *Category, tags []Tag) *Book {
	now := time.Now()
	return &Book{
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    category,
		Tags:        tags,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanModify 只有作者本人可以修改或删除图书
func (b *Book) CanModify(userID uint) bool {
	return userID != 0 && b.AuthorID == userID
}

// CategoryName 分类名,没有分类时返回Uncategorized
func (b *Book) CategoryName() string {
	if b.Category == nil {
		return UncategorizedName
	}
	return b.Category.Name
}

// CategoryID 没有分类时返回0
func (b *Book) CategoryID() uint {
	if b.Category == nil {
		return 0
	}
	return b.Category.ID
}

// TagNames 标签名列表
func (b *Book) TagNames() []string {
	names := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		names = append(names, t.Name)
	}
	return names
}

// TagIDs 标签ID列表
func (b *Book) TagIDs() []uint {
	ids := make([]uint, 0, len(b.Tags))
	for _, t := range b.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// ApplyChanges 整体替换可编辑字段(表单提交即完整内容)
func (b *Book) ApplyChanges(c Changes) {
	b.Title = strings.TrimSpace(c.Title)
	b.Description = c.Description
	b.Category = c.Category
	b.Tags = c.Tags
	if c.CoverKey != "" {
		b.CoverKey = c.CoverKey
	}
	b.UpdatedAt = time.Now()
}

// Changes 编辑图书时提交的内容
type Changes struct {
	Title       string
	Description string
	Category    *Category
	Tags        []Tag
	CoverKey    string // 为空表示保留原封面
}
