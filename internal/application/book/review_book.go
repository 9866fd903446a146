package book

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ReviewBookUseCase 在详情页提交评分和/或评论
// 业务规则:
// 1. 评分和评论互相独立，任何一项无效都不影响另一项
// 2. 缺失或越界的评分被忽略
// 3. 空白评论被忽略
// 4. 同一用户再次评分覆盖旧分数
// 5. 评分和评论在同一事务中写入，事件在提交后发布
type ReviewBookUseCase struct {
	bookService    book.Service
	ratingService  rating.Service
	commentService comment.Service
	txManager      *database.TxManager
	publisher      event.Publisher
	log            *zap.Logger
}

// NewReviewBookUseCase 创建评价用例
func NewReviewBookUseCase(
	bookService book.Service,
	ratingService rating.Service,
	commentService comment.Service,
	txManager *database.TxManager,
	publisher event.Publisher,
	log *zap.Logger,
) *ReviewBookUseCase {
	return &ReviewBookUseCase{
		bookService:    bookService,
		ratingService:  ratingService,
		commentService: commentService,
		txManager:      txManager,
		publisher:      publisher,
		log:            log,
	}
}

// ReviewBookRequest Score为nil表示没有提交评分（或不是数字）
type ReviewBookRequest struct {
	BookID  uint
	UserID  uint
	Score   *int
	Content string
}

// ReviewBookResponse 实际生效的部分
type ReviewBookResponse struct {
	Rated     bool `json:"rated"`
	Commented bool `json:"commented"`
}

// Execute 执行评价，图书不存在返回ErrBookNotFound
func (uc *ReviewBookUseCase) Execute(ctx context.Context, req ReviewBookRequest) (resp *ReviewBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "ReviewBook", attribute.Int("book_id", int(req.BookID)))
	defer func() { tracing.End(span, err) }()

	b, err := uc.bookService.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	var (
		r *rating.Rating
		c *comment.Comment
	)
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if req.Score != nil {
			var err error
			r, err = uc.ratingService.Submit(ctx, req.UserID, b.ID, *req.Score)
			if errors.Is(err, rating.ErrInvalidScore) {
				uc.log.Debug("忽略无效评分", zap.Int("score", *req.Score), zap.Uint("book_id", b.ID))
			} else if err != nil {
				return err
			}
		}

		var err error
		c, err = uc.commentService.Add(ctx, req.UserID, b.ID, req.Content)
		if errors.Is(err, comment.ErrEmptyContent) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	resp = &ReviewBookResponse{Rated: r != nil, Commented: c != nil}

	if r != nil {
		metrics.IncCounter(metrics.RatingsSubmittedTotal)
		events.Emit(ctx, uc.publisher, uc.log, event.New(event.RatingSubmitted, event.RatingPayload{
			BookID: r.BookID,
			UserID: r.UserID,
			Score:  r.Score,
		}))
	}
	if c != nil {
		metrics.IncCounter(metrics.CommentsCreatedTotal)
		events.Emit(ctx, uc.publisher, uc.log, event.New(event.CommentCreated, event.CommentPayload{
			CommentID: c.ID,
			BookID:    c.BookID,
			UserID:    c.UserID,
		}))
	}

	span.SetAttributes(attribute.Bool("rated", resp.Rated), attribute.Bool("commented", resp.Commented))
	return resp, nil
}
