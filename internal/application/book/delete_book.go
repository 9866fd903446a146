package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// DeleteBookUseCase 删除图书（只有作者本人可以删除）
// 评分、评论、标签关联随图书一起删除；封面在数据删除成功后清理
type DeleteBookUseCase struct {
	bookService book.Service
	covers      book.CoverStore
	publisher   event.Publisher
	log         *zap.Logger
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookService book.Service,
	covers book.CoverStore,
	publisher event.Publisher,
	log *zap.Logger,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		covers:      covers,
		publisher:   publisher,
		log:         log,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID, userID uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, "DeleteBook", attribute.Int("book_id", int(bookID)))
	defer func() { tracing.End(span, err) }()

	deleted, err := uc.bookService.DeleteBook(ctx, bookID, userID)
	if err != nil {
		return err
	}

	if deleted.CoverKey != "" {
		if err := uc.covers.Delete(ctx, deleted.CoverKey); err != nil {
			uc.log.Warn("删除封面失败", zap.String("key", deleted.CoverKey), zap.Error(err))
		}
	}

	metrics.IncCounter(metrics.BooksDeletedTotal)
	events.Emit(ctx, uc.publisher, uc.log, event.New(event.BookDeleted, event.BookPayload{
		BookID:   deleted.ID,
		Title:    deleted.Title,
		AuthorID: deleted.AuthorID,
	}))

	uc.log.Info("图书已删除", zap.Uint("book_id", deleted.ID), zap.Uint("user_id", userID))
	return nil
}
