package rating

import (
	"context"
)

// Repository 评分仓储接口
type Repository interface {
	// Upsert 按(user_id, book_id)插入或覆盖评分,单条语句完成,不做先查后写
	Upsert(ctx context.Context, rating *Rating) error

	// FindByUserAndBook 不存在时返回ErrRatingNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Rating, error)

	// Summaries 一次聚合查询返回多本图书的平均分和评分人数
	// 没有评分的图书不会出现在结果中
	Summaries(ctx context.Context, bookIDs []uint) (map[uint]Summary, error)
}
