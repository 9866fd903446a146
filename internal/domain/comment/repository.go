package comment

import (
	"context"
)

// Repository 评论仓储接口
type Repository interface {
	Create(ctx context.Context, comment *Comment) error

	// ListByBook 按创建时间倒序
	ListByBook(ctx context.Context, bookID uint) ([]*Comment, error)
}
