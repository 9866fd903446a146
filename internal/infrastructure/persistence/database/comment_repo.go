package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) comment.Repository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *comment.Comment) error {
	model := &CommentModel{
		BookID:    c.BookID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "发表评论失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// ListByBook 最新的评论在前,同一时刻按ID倒序
func (r *commentRepository) ListByBook(ctx context.Context, bookID uint) ([]*comment.Comment, error) {
	var models []CommentModel
	err := dbFrom(ctx, r.db).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评论失败")
	}

	out := make([]*comment.Comment, len(models))
	for i, m := range models {
		c := &comment.Comment{
			ID:        m.ID,
			BookID:    m.BookID,
			UserID:    m.UserID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
		if m.User != nil {
			c.Username = m.User.Username
		}
		out[i] = c
	}
	return out, nil
}
