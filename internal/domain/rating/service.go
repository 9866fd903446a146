package rating

import (
	"context"
	"errors"
)

// Service 评分领域服务
type Service interface {
	// Submit 提交评分,同一用户对同一本书重复提交会覆盖旧分数
	Submit(ctx context.Context, userID, bookID uint, score int) (*Rating, error)

	// UserScore 用户对图书的评分,未评分返回nil
	UserScore(ctx context.Context, userID, bookID uint) (*int, error)

	// Summaries 批量汇总,每个传入的图书ID都有对应条目(无评分时Average为nil)
	Summaries(ctx context.Context, bookIDs []uint) (map[uint]Summary, error)

	// Summary 单本图书汇总
	Summary(ctx context.Context, bookID uint) (Summary, error)
}

type service struct {
	repo Repository
}

// NewService 创建评分服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, userID, bookID uint, score int) (*Rating, error) {
	if err := ValidateScore(score); err != nil {
		return nil, err
	}

	r := &Rating{UserID: userID, BookID: bookID, Score: score}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) UserScore(ctx context.Context, userID, bookID uint) (*int, error) {
	if userID == 0 {
		return nil, nil
	}
	r, err := s.repo.FindByUserAndBook(ctx, userID, bookID)
	if errors.Is(err, ErrRatingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r.Score, nil
}

func (s *service) Summaries(ctx context.Context, bookIDs []uint) (map[uint]Summary, error) {
	result := make(map[uint]Summary, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	found, err := s.repo.Summaries(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range bookIDs {
		if sum, ok := found[id]; ok {
			result[id] = sum
			continue
		}
		result[id] = Summary{BookID: id}
	}
	return result, nil
}

func (s *service) Summary(ctx context.Context, bookID uint) (Summary, error) {
	all, err := s.Summaries(ctx, []uint{bookID})
	if err != nil {
		return Summary{}, err
	}
	return all[bookID], nil
}
