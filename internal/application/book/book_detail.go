package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// BookDetailUseCase 图书详情
// 包含评分汇总、评论（最新在前）、当前用户自己的评分以及是否可编辑
type BookDetailUseCase struct {
	bookService    book.Service
	ratingService  rating.Service
	commentService comment.Service
	covers         book.CoverStore
}

// NewBookDetailUseCase 创建详情用例
func NewBookDetailUseCase(
	bookService book.Service,
	ratingService rating.Service,
	commentService comment.Service,
	covers book.CoverStore,
) *BookDetailUseCase {
	return &BookDetailUseCase{
		bookService:    bookService,
		ratingService:  ratingService,
		commentService: commentService,
		covers:         covers,
	}
}

// BookDetailRequest UserID为0表示匿名访问
type BookDetailRequest struct {
	BookID uint
	UserID uint
}

// BookDetailResponse 详情响应
type BookDetailResponse struct {
	Book       BookItem       `json:"book"`
	Comments   []CommentItem  `json:"comments"`
	UserRating *int           `json:"user_rating"`
	CanModify  bool           `json:"can_modify"`
	Categories []CategoryItem `json:"categories"`
}

// Execute 执行详情查询
func (uc *BookDetailUseCase) Execute(ctx context.Context, req BookDetailRequest) (resp *BookDetailResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookDetail", attribute.Int("book_id", int(req.BookID)))
	defer func() { tracing.End(span, err) }()

	b, err := uc.bookService.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	summary, err := uc.ratingService.Summary(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentService.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	userRating, err := uc.ratingService.UserScore(ctx, req.UserID, b.ID)
	if err != nil {
		return nil, err
	}

	taxonomy, err := loadTaxonomy(ctx, uc.bookService)
	if err != nil {
		return nil, err
	}

	return &BookDetailResponse{
		Book:       toBookItem(b, summary, uc.covers),
		Comments:   toCommentItems(comments),
		UserRating: userRating,
		CanModify:  b.CanModify(req.UserID),
		Categories: taxonomy.Categories,
	}, nil
}
