package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/saga"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// UpdateBookUseCase 编辑图书（只有作者本人可以编辑）
// 流程：校验作者 → 保存新封面 → 更新图书 → 删除旧封面
// 先校验作者，非作者不会产生任何写入（包括封面文件）
type UpdateBookUseCase struct {
	bookService book.Service
	covers      book.CoverStore
	publisher   event.Publisher
	log         *zap.Logger
}

// NewUpdateBookUseCase 创建编辑图书用例
func NewUpdateBookUseCase(
	bookService book.Service,
	covers book.CoverStore,
	publisher event.Publisher,
	log *zap.Logger,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		covers:      covers,
		publisher:   publisher,
		log:         log,
	}
}

// BookFormResponse 编辑表单的当前值和可选项
type BookFormResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id"`
	TagIDs      []uint   `json:"tag_ids"`
	CoverURL    string   `json:"cover_url"`
	Taxonomy    Taxonomy `json:"taxonomy"`
}

// Load 读取编辑表单，非作者返回book.ErrForbidden
func (uc *UpdateBookUseCase) Load(ctx context.Context, bookID, userID uint) (*BookFormResponse, error) {
	b, err := uc.bookService.Authorize(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}

	taxonomy, err := loadTaxonomy(ctx, uc.bookService)
	if err != nil {
		return nil, err
	}

	return &BookFormResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		CategoryID:  b.CategoryID(),
		TagIDs:      b.TagIDs(),
		CoverURL:    uc.covers.URL(b.CoverKey),
		Taxonomy:    taxonomy,
	}, nil
}

// UpdateBookRequest 编辑请求，Cover为nil表示保留原封面
type UpdateBookRequest struct {
	BookID      uint
	UserID      uint
	Title       string
	Description string
	CategoryID  uint
	TagIDs      []uint
	Cover       *Cover
}

// Execute 执行编辑
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, "UpdateBook", attribute.Int("book_id", int(req.BookID)))
	defer func() { tracing.End(span, err) }()

	current, err := uc.bookService.Authorize(ctx, req.BookID, req.UserID)
	if err != nil {
		return err
	}
	oldCover := current.CoverKey

	input := book.Input{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	}

	var updated *book.Book
	s := saga.New("update_book", uc.log, sagaTimeout)
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
	s.AddStep("update_book",
		func(ctx context.Context) error {
			b, err := uc.bookService.UpdateBook(ctx, req.BookID, req.UserID, input)
			updated = b
			return err
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return err
	}

	// 新封面已生效，旧封面清理失败只留下孤儿文件
	if input.CoverKey != "" && oldCover != "" && oldCover != input.CoverKey {
		if err := uc.covers.Delete(ctx, oldCover); err != nil {
			uc.log.Warn("删除旧封面失败", zap.String("key", oldCover), zap.Error(err))
		}
	}

	metrics.IncCounter(metrics.BooksUpdatedTotal)
	events.Emit(ctx, uc.publisher, uc.log, event.New(event.BookUpdated, event.BookPayload{
		BookID:   updated.ID,
		Title:    updated.Title,
		AuthorID: updated.AuthorID,
	}))
	return nil
}
