package event

import (
	"context"
	"time"
)

// 事件名即消息的routing key
const (
	BookPublished   = "book.published"
	BookUpdated     = "book.updated"
	BookDeleted     = "book.deleted"
	RatingSubmitted = "rating.submitted"
	CommentCreated  = "comment.created"
)

// Event 领域事件
type Event struct {
	Name       string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New 创建事件，发生时间取当前时间
func New(name string, payload interface{}) Event {
	return Event{Name: name, OccurredAt: time.Now(), Payload: payload}
}

type BookPayload struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	AuthorID uint   `json:"author_id"`
}

type RatingPayload struct {
	BookID uint `json:"book_id"`
	UserID uint `json:"user_id"`
	Score  int  `json:"score"`
}

type CommentPayload struct {
	CommentID uint `json:"comment_id"`
	BookID    uint `json:"book_id"`
	UserID    uint `json:"user_id"`
}

// Publisher 事件发布
// 事件是通知性质的，发布失败不应让已提交的业务操作失败
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
