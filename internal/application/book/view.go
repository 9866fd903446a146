package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
)

const timeLayout = "2006-01-02 15:04:05"

// CategoryItem 分类
type CategoryItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TagItem 标签
type TagItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookItem 图书及其评分汇总
type BookItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
	Tags        []TagItem `json:"tags"`
	AuthorID    uint      `json:"author_id"`
	Author      string    `json:"author"`
	// AverageRating 没有评分时为null
	AverageRating *float64 `json:"average_rating"`
	RatingCount   int64    `json:"rating_count"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// CommentItem 评论
type CommentItem struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toBookItem(b *book.Book, sum rating.Summary, covers book.CoverStore) BookItem {
	tags := make([]TagItem, len(b.Tags))
	for i, t := range b.Tags {
		tags[i] = TagItem{ID: t.ID, Name: t.Name}
	}

	return BookItem{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		CoverURL:      covers.URL(b.CoverKey),
		CategoryID:    b.CategoryID(),
		Category:      b.CategoryName(),
		Tags:          tags,
		AuthorID:      b.AuthorID,
		Author:        b.AuthorName,
		AverageRating: sum.Average,
		RatingCount:   sum.Count,
		CreatedAt:     b.CreatedAt.Format(timeLayout),
		UpdatedAt:     b.UpdatedAt.Format(timeLayout),
	}
}

// toBookItems 一次聚合查询取回整页图书的评分
func toBookItems(ctx context.Context, books []*book.Book, ratings rating.Service, covers book.CoverStore) ([]BookItem, error) {
	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}

	sums, err := ratings.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]BookItem, len(books))
	for i, b := range books {
		items[i] = toBookItem(b, sums[b.ID], covers)
	}
	return items, nil
}

func toCommentItems(comments []*comment.Comment) []CommentItem {
	items := make([]CommentItem, len(comments))
	for i, c := range comments {
		items[i] = CommentItem{
			ID:        c.ID,
			UserID:    c.UserID,
			Username:  c.Username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(timeLayout),
		}
	}
	return items
}

// Taxonomy 全部分类和标签（按名称排序），用于筛选栏和表单选项
type Taxonomy struct {
	Categories []CategoryItem `json:"categories"`
	Tags       []TagItem      `json:"tags"`
}

func loadTaxonomy(ctx context.Context, books book.Service) (Taxonomy, error) {
	categories, err := books.Categories(ctx)
	if err != nil {
		return Taxonomy{}, err
	}
	tags, err := books.Tags(ctx)
	if err != nil {
		return Taxonomy{}, err
	}

	t := Taxonomy{
		Categories: make([]CategoryItem, len(categories)),
		Tags:       make([]TagItem, len(tags)),
	}
	for i, c := range categories {
		t.Categories[i] = CategoryItem{ID: c.ID, Name: c.Name}
	}
	for i, tag := range tags {
		t.Tags[i] = TagItem{ID: tag.ID, Name: tag.Name}
	}
	return t, nil
}
