package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/form"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

const coverField = "cover_image"

// bookFormErrors 领域错误到表单字段的映射
var bookFormErrors = map[error]string{
	book.ErrInvalidTitle:     "title",
	book.ErrCategoryNotFound: "category_id",
	book.ErrTagNotFound:      "tag_ids",
	book.ErrUnsupportedCover: coverField,
	book.ErrCoverTooLarge:    coverField,
}

// BookHandler 图书HTTP处理器
// Handler只负责解析请求、调用用例、输出响应
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	bookDetail  *appbook.BookDetailUseCase
	publishBook *appbook.PublishBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	reviewBook  *appbook.ReviewBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	bookDetail *appbook.BookDetailUseCase,
	publishBook *appbook.PublishBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	reviewBook *appbook.ReviewBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		bookDetail:  bookDetail,
		publishBook: publishBook,
		updateBook:  updateBook,
		deleteBook:  deleteBook,
		reviewBook:  reviewBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按分类、标签精确筛选，q在书名、描述、分类、标签中模糊搜索；页码越界取最后一页
// @Tags         图书
// @Produce      json
// @Param        category query string false "分类名"
// @Param        tag      query string false "标签名"
// @Param        q        query string false "搜索关键字"
// @Param        page     query string false "页码"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Router       / [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Query:    c.Query("q"),
		Page:     c.Query("page"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(result))
}

// BookDetail 图书详情
// @Summary      图书详情
// @Description  图书、平均分、评论（最新在前）、当前用户的评分、是否可编辑
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetailResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) BookDetail(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookDetail.Execute(c.Request.Context(), appbook.BookDetailRequest{
		BookID: id,
		UserID: middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ReviewBook 评分和/或评论
// @Summary      提交评分和评论
// @Description  无效评分被忽略，评论仍然保存；完成后303跳转回详情页
// @Tags         图书
// @Accept       x-www-form-urlencoded
// @Security     CookieAuth
// @Param        id      path     int    true  "图书ID"
// @Param        score   formData string false "评分1-5"
// @Param        content formData string false "评论内容"
// @Success      303 "跳转到 /books/{id}"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [post]
func (h *BookHandler) ReviewBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	f := form.Bind[dto.ReviewForm](c)
	if !f.Valid() {
		response.FormError(c, f.Errors)
		return
	}

	_, err = h.reviewBook.Execute(c.Request.Context(), appbook.ReviewBookRequest{
		BookID:  id,
		UserID:  middleware.MustGetUserID(c),
		Score:   f.Value.ScoreValue(),
		Content: f.Value.Content,
	})
	if err != nil {
		if fields := form.FieldErrors(err, map[error]string{comment.ErrContentTooLong: "content"}); fields != nil {
			response.FormError(c, fields)
			return
		}
		response.Error(c, err)
		return
	}
	response.Redirect(c, bookPath(id))
}

// CreateBook 发布图书
// @Summary      发布图书
// @Description  multipart表单，封面可选（jpeg/png/gif/webp）；成功303跳转到详情页
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        title       formData string true  "书名"
// @Param        description formData string false "描述（富文本）"
// @Param        category_id formData int    false "分类ID"
// @Param        tag_ids     formData []int  false "标签ID" collectionFormat(multi)
// @Param        cover_image formData file   false "封面"
// @Success      303 "跳转到 /books/{id}"
// @Failure      422 {object} response.Response{data=response.FormErrors} "表单错误"
// @Router       /books/create [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	f := form.Bind[dto.BookForm](c)
	cover, closeCover, err := openCover(c)
	if err != nil {
		f.AddError(coverField, "封面读取失败")
	}
	defer closeCover()
	if !f.Valid() {
		response.FormError(c, f.Errors)
		return
	}

	result, err := h.publishBook.Execute(c.Request.Context(), appbook.PublishBookRequest{
		AuthorID:    middleware.MustGetUserID(c),
		Title:       f.Value.Title,
		Description: f.Value.Description,
		CategoryID:  f.Value.CategoryID,
		TagIDs:      f.Value.TagIDs,
		Cover:       cover,
	})
	if err != nil {
		respondBookError(c, err)
		return
	}
	response.Redirect(c, bookPath(result.ID))
}

// EditBook 编辑表单当前值
// @Summary      编辑表单
// @Tags         图书
// @Produce      json
// @Security     CookieAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookFormResponse}
// @Success      303 "非作者跳转到详情页"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/update/{id} [get]
func (h *BookHandler) EditBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateBook.Load(c.Request.Context(), id, middleware.MustGetUserID(c))
	if errors.Is(err, book.ErrForbidden) {
		response.Redirect(c, bookPath(id))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBook 编辑图书
// @Summary      编辑图书
// @Description  只有作者可以编辑；非作者303跳转到详情页，不做任何修改
// @Tags         图书
// @Accept       multipart/form-data
// @Security     CookieAuth
// @Param        id          path     int    true  "图书ID"
// @Param        title       formData string true  "书名"
// @Param        description formData string false "描述（富文本）"
// @Param        category_id formData int    false "分类ID"
// @Param        tag_ids     formData []int  false "标签ID" collectionFormat(multi)
// @Param        cover_image formData file   false "新封面"
// @Success      303 "跳转到 /books/{id}"
// @Failure      422 {object} response.Response{data=response.FormErrors} "表单错误"
// @Router       /books/update/{id} [post]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	f := form.Bind[dto.BookForm](c)
	cover, closeCover, err := openCover(c)
	if err != nil {
		f.AddError(coverField, "封面读取失败")
	}
	defer closeCover()

	userID := middleware.MustGetUserID(c)
	if !f.Valid() {
		// 非作者即使表单无效也不应看到错误详情
		if _, err := h.updateBook.Load(c.Request.Context(), id, userID); err != nil {
			respondBookError(c, err, id)
			return
		}
		response.FormError(c, f.Errors)
		return
	}

	err = h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      id,
		UserID:      userID,
		Title:       f.Value.Title,
		Description: f.Value.Description,
		CategoryID:  f.Value.CategoryID,
		TagIDs:      f.Value.TagIDs,
		Cover:       cover,
	})
	if err != nil {
		respondBookError(c, err, id)
		return
	}
	response.Redirect(c, bookPath(id))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  只有作者可以删除；成功303跳转首页，非作者303跳转到详情页
// @Tags         图书
// @Security     CookieAuth
// @Param        id path int true "图书ID"
// @Success      303 "跳转到 / 或 /books/{id}"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/delete/{id} [post]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = h.deleteBook.Execute(c.Request.Context(), id, middleware.MustGetUserID(c))
	if errors.Is(err, book.ErrForbidden) {
		response.Redirect(c, bookPath(id))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Redirect(c, "/")
}

// respondBookError 非作者跳转详情页，字段类错误返回422，其余按错误码输出
func respondBookError(c *gin.Context, err error, id ...uint) {
	if errors.Is(err, book.ErrForbidden) && len(id) > 0 {
		response.Redirect(c, bookPath(id[0]))
		return
	}
	if fields := form.FieldErrors(err, bookFormErrors); fields != nil {
		response.FormError(c, fields)
		return
	}
	response.Error(c, err)
}

// openCover 读取可选的封面文件，没有上传时返回nil
func openCover(c *gin.Context) (*appbook.Cover, func(), error) {
	noop := func() {}

	header, err := c.FormFile(coverField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Size == 0 {
		return nil, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}
	return &appbook.Cover{Filename: header.Filename, Content: file}, func() { _ = file.Close() }, nil
}
