package dto

import (
	"strconv"
	"strings"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookForm 发布/编辑图书表单（multipart或urlencoded）
// 封面文件cover_image单独从multipart中读取
type BookForm struct {
	Title       string `form:"title" binding:"required,max=100" example:"Dragonrider"`
	Description string `form:"description" binding:"max=20000" example:"<p>A tale of dragons</p>"`
	CategoryID  uint   `form:"category_id" example:"1"`
	TagIDs      []uint `form:"tag_ids" example:"1"`
}

// ReviewForm 详情页提交的评分和评论
// score保持字符串，非数字视为没有评分
type ReviewForm struct {
	Score   string `form:"score" example:"5"`
	Content string `form:"content" example:"Great read"`
}

// ScoreValue 解析评分，空或非数字返回nil
func (f ReviewForm) ScoreValue() *int {
	n, err := strconv.Atoi(strings.TrimSpace(f.Score))
	if err != nil {
		return nil
	}
	return &n
}

// BookListResponse 首页列表
type BookListResponse struct {
	*response.PageData
	Categories  []appbook.CategoryItem `json:"categories"`
	Tags        []appbook.TagItem      `json:"tags"`
	SearchQuery string                 `json:"search_query"`
	Category    string                 `json:"category"`
	Tag         string                 `json:"tag"`
}

// NewBookListResponse 由用例结果组装列表响应
func NewBookListResponse(r *appbook.ListBooksResponse) *BookListResponse {
	return &BookListResponse{
		PageData:    response.NewPageData(r.Books, r.Page),
		Categories:  r.Taxonomy.Categories,
		Tags:        r.Taxonomy.Tags,
		SearchQuery: r.SearchQuery,
		Category:    r.Category,
		Tag:         r.Tag,
	}
}
