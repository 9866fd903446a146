package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

// Upsert 单条语句插入或覆盖评分
// MySQL: INSERT ... ON DUPLICATE KEY UPDATE
// SQLite: INSERT ... ON CONFLICT (user_id, book_id) DO UPDATE
// 并发提交由唯一索引串行化,不会出现两条记录
func (r *ratingRepository) Upsert(ctx context.Context, rt *rating.Rating) error {
	now := time.Now()
	model := &RatingModel{
		UserID:    rt.UserID,
		BookID:    rt.BookID,
		Score:     rt.Score,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := dbFrom(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "保存评分失败")
	}

	rt.UpdatedAt = now
	return nil
}

func (r *ratingRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*rating.Rating, error) {
	var model RatingModel
	err := dbFrom(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, apperrors.Wrap(err, "查询评分失败")
	}

	return &rating.Rating{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Score:     model.Score,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

type ratingStat struct {
	BookID      uint
	AvgScore    float64
	RatingCount int64
}

// Summaries 一页图书只发一条聚合SQL
func (r *ratingRepository) Summaries(ctx context.Context, bookIDs []uint) (map[uint]rating.Summary, error) {
	result := make(map[uint]rating.Summary, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var stats []ratingStat
	err := dbFrom(ctx, r.db).Model(&RatingModel{}).
		Select("book_id, AVG(score) AS avg_score, COUNT(*) AS rating_count").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计评分失败")
	}

	for _, s := range stats {
		avg := s.AvgScore
		result[s.BookID] = rating.Summary{BookID: s.BookID, Average: &avg, Count: s.RatingCount}
	}
	return result, nil
}
