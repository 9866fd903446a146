package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// ListBooksUseCase 首页图书列表：筛选、搜索、分页
// 设计说明:
// 1. 分类/标签按名称精确匹配，q在书名、描述、分类名、标签名中模糊查找
// 2. 每页大小来自catalog.page_size配置
// 3. 页码非数字取第1页，越界取最后一页
// 4. 整页评分通过一次聚合查询获得
type ListBooksUseCase struct {
	bookService   book.Service
	ratingService rating.Service
	covers        book.CoverStore
	pageSize      int
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(
	bookService book.Service,
	ratingService rating.Service,
	covers book.CoverStore,
	cfg *config.Config,
) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService:   bookService,
		ratingService: ratingService,
		covers:        covers,
		pageSize:      cfg.Catalog.PageSize,
	}
}

// ListBooksRequest 列表查询请求，Page保留原始字符串
type ListBooksRequest struct {
	Category string
	Tag      string
	Query    string
	Page     string
}

// ListBooksResponse 列表查询响应
type ListBooksResponse struct {
	Books       []BookItem
	Page        pagination.Page
	Taxonomy    Taxonomy
	SearchQuery string
	Category    string
	Tag         string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "ListBooks",
		attribute.String("category", req.Category),
		attribute.String("tag", req.Tag),
		attribute.String("q", req.Query),
	)
	defer func() { tracing.End(span, err) }()
	defer metrics.ObserveSince(metrics.BookSearchDuration, time.Now())

	criteria := book.SearchCriteria{Category: req.Category, Tag: req.Tag, Query: req.Query}
	books, page, err := uc.bookService.Search(ctx, criteria, uc.pageSize, pagination.ParseNumber(req.Page))
	if err != nil {
		return nil, err
	}

	items, err := toBookItems(ctx, books, uc.ratingService, uc.covers)
	if err != nil {
		return nil, err
	}

	taxonomy, err := loadTaxonomy(ctx, uc.bookService)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("total", page.Total), attribute.Int("page", page.Number))

	return &ListBooksResponse{
		Books:       items,
		Page:        page,
		Taxonomy:    taxonomy,
		SearchQuery: req.Query,
		Category:    req.Category,
		Tag:         req.Tag,
	}, nil
}
