package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
)

// AuthorBooksUseCase 个人主页“我的图书”，附带评分汇总
type AuthorBooksUseCase struct {
	bookService   book.Service
	ratingService rating.Service
	covers        book.CoverStore
}

func NewAuthorBooksUseCase(bookService book.Service, ratingService rating.Service, covers book.CoverStore) *AuthorBooksUseCase {
	return &AuthorBooksUseCase{
		bookService:   bookService,
		ratingService: ratingService,
		covers:        covers,
	}
}

// Execute 最新发布的在前
func (uc *AuthorBooksUseCase) Execute(ctx context.Context, authorID uint) ([]BookItem, error) {
	books, err := uc.bookService.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toBookItems(ctx, books, uc.ratingService, uc.covers)
}
