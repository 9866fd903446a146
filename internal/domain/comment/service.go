package comment

import (
	"context"
	"unicode/utf8"
)

// Service 评论领域服务
type Service interface {
	// Add 发表评论,内容为空或超长时拒绝
	Add(ctx context.Context, userID, bookID uint, content string) (*Comment, error)

	// ListByBook 图书的全部评论,最新的在前
	ListByBook(ctx context.Context, bookID uint) ([]*Comment, error)
}

type service struct {
	repo Repository
}

// NewService 创建评论服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, bookID uint, content string) (*Comment, error) {
	c := NewComment(userID, bookID, content)
	if c.Content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(c.Content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByBook(ctx context.Context, bookID uint) ([]*Comment, error) {
	return s.repo.ListByBook(ctx, bookID)
}
