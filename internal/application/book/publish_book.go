package book

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/saga"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const sagaTimeout = 30 * time.Second

// Cover 上传的封面文件
type Cover struct {
	Filename string
	Content  io.Reader
}

// PublishBookUseCase 发布图书
// 封面存储和数据库不在同一个事务里，用Saga保证一致：
//
//	步骤1 保存封面   补偿：删除封面
//	步骤2 写入图书   （校验失败或写库失败时触发补偿）
type PublishBookUseCase struct {
	bookService book.Service
	covers      book.CoverStore
	publisher   event.Publisher
	log         *zap.Logger
}

// NewPublishBookUseCase 创建发布图书用例
func NewPublishBookUseCase(
	bookService book.Service,
	covers book.CoverStore,
	publisher event.Publisher,
	log *zap.Logger,
) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
		covers:      covers,
		publisher:   publisher,
		log:         log,
	}
}

// PublishBookRequest 发布图书请求，Cover为nil表示不上传封面
type PublishBookRequest struct {
	AuthorID    uint
	Title       string
	Description string
	CategoryID  uint
	TagIDs      []uint
	Cover       *Cover
}

// PublishBookResponse 发布结果
type PublishBookResponse struct {
	ID uint `json:"id"`
}

// Execute 执行发布
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (resp *PublishBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "PublishBook", attribute.Int("author_id", int(req.AuthorID)))
	defer func() { tracing.End(span, err) }()

	input := book.Input{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	}

	var created *book.Book
	s := saga.New("publish_book", uc.log, sagaTimeout)

	if req.Cover != nil {
		s.AddStep("save_cover",
			func(ctx context.Context) error {
				key, err := uc.covers.Save(ctx, req.Cover.Filename, req.Cover.Content)
				input.CoverKey = key
				return err
			},
			func(ctx context.Context) error {
				return uc.covers.Delete(ctx, input.CoverKey)
			},
		)
	}

	s.AddStep("create_book",
		func(ctx context.Context) error {
			b, err := uc.bookService.PublishBook(ctx, req.AuthorID, input)
			created = b
			return err
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksPublishedTotal)
	events.Emit(ctx, uc.publisher, uc.log, event.New(event.BookPublished, event.BookPayload{
		BookID:   created.ID,
		Title:    created.Title,
		AuthorID: created.AuthorID,
	}))

	uc.log.Info("图书已发布", zap.Uint("book_id", created.ID), zap.Uint("author_id", created.AuthorID))
	return &PublishBookResponse{ID: created.ID}, nil
}
