package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/form"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// 个人中心的三个分区
const (
	sectionProfile = "profile"
	sectionBooks   = "books"
	sectionUpdate  = "update"
)

var profileFormErrors = map[error]string{
	apperrors.ErrUsernameDuplicate: "username",
	user.ErrInvalidUsername:        "username",
	user.ErrInvalidEmail:           "email",
}

// ProfileHandler 个人中心
type ProfileHandler struct {
	profile     *appuser.ProfileUseCase
	authorBooks *appbook.AuthorBooksUseCase
}

// NewProfileHandler 创建个人中心处理器
func NewProfileHandler(profile *appuser.ProfileUseCase, authorBooks *appbook.AuthorBooksUseCase) *ProfileHandler {
	return &ProfileHandler{profile: profile, authorBooks: authorBooks}
}

// Show 个人中心
// @Summary      个人中心
// @Description  section=profile（默认）用户信息；books 自己发布的图书及评分；update 资料表单当前值
// @Tags         用户
// @Produce      json
// @Security     CookieAuth
// @Param        section query string false "profile | books | update"
// @Success      200 {object} response.Response{data=dto.ProfileResponse}
// @Router       /profile [get]
func (h *ProfileHandler) Show(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	ctx := c.Request.Context()

	switch section := c.DefaultQuery("section", sectionProfile); section {
	case sectionBooks:
		books, err := h.authorBooks.Execute(ctx, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, &dto.ProfileResponse{Section: section, Books: books})

	case sectionUpdate:
		info, err := h.profile.Get(ctx, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, &dto.ProfileResponse{Section: section, Form: &dto.ProfileForm{
			Username:  info.Username,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Email:     info.Email,
		}})

	default:
		info, err := h.profile.Get(ctx, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, &dto.ProfileResponse{Section: sectionProfile, User: info})
	}
}

// Update 修改个人资料
// @Summary      修改个人资料
// @Tags         用户
// @Accept       x-www-form-urlencoded
// @Security     CookieAuth
// @Param        section    query    string true  "固定为update"
// @Param        username   formData string true  "用户名"
// @Param        first_name formData string false "名"
// @Param        last_name  formData string false "姓"
// @Param        email      formData string false "邮箱"
// @Success      303 "跳转到 /"
// @Failure      422 {object} response.Response{data=response.FormErrors} "表单错误"
// @Router       /profile [post]
func (h *ProfileHandler) Update(c *gin.Context) {
	if c.Query("section") != sectionUpdate {
		response.Redirect(c, "/profile")
		return
	}

	f := form.Bind[dto.ProfileForm](c)
	if !f.Valid() {
		response.FormError(c, f.Errors)
		return
	}

	_, err := h.profile.Update(c.Request.Context(), appuser.UpdateProfileRequest{
		UserID:    middleware.MustGetUserID(c),
		Username:  f.Value.Username,
		FirstName: f.Value.FirstName,
		LastName:  f.Value.LastName,
		Email:     f.Value.Email,
	})
	if err != nil {
		if fields := form.FieldErrors(err, profileFormErrors); fields != nil {
			response.FormError(c, fields)
			return
		}
		response.Error(c, err)
		return
	}
	response.Redirect(c, "/")
}
