package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/form"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

var signupFormErrors = map[error]string{
	apperrors.ErrUsernameDuplicate: "username",
	user.ErrInvalidUsername:        "username",
	user.ErrInvalidEmail:           "email",
	apperrors.ErrWeakPassword:      "password",
}

// UserHandler 注册、登录、登出
type UserHandler struct {
	register     *appuser.RegisterUseCase
	login        *appuser.LoginUseCase
	logout       *appuser.LogoutUseCase
	cookieSecure bool
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	register *appuser.RegisterUseCase,
	login *appuser.LoginUseCase,
	logout *appuser.LogoutUseCase,
	cfg *config.Config,
) *UserHandler {
	return &UserHandler{
		register:     register,
		login:        login,
		logout:       logout,
		cookieSecure: cfg.Server.CookieSecure,
	}
}

// Signup 用户注册
// @Summary      用户注册
// @Description  注册成功后直接登录，写入access_token Cookie并303跳转首页
// @Tags         用户
// @Accept       x-www-form-urlencoded
// @Param        username         formData string true  "用户名"
// @Param        email            formData string false "邮箱"
// @Param        password         formData string true  "密码（8-20位，包含字母和数字）"
// @Param        password_confirm formData string true  "确认密码"
// @Success      303 "跳转到 /"
// @Failure      422 {object} response.Response{data=response.FormErrors} "表单错误"
// @Router       /signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	f := form.Bind[dto.SignupForm](c)
	if !f.Valid() {
		response.FormError(c, f.Errors)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: f.Value.Username,
		Email:    f.Value.Email,
		Password: f.Value.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		if fields := form.FieldErrors(err, signupFormErrors); fields != nil {
			response.FormError(c, fields)
			return
		}
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, result)
	response.Redirect(c, "/")
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证用户名密码，写入access_token Cookie并303跳转到next（仅站内地址）
// @Tags         用户
// @Accept       x-www-form-urlencoded
// @Param        username formData string true  "用户名"
// @Param        password formData string true  "密码"
// @Param        next     formData string false "登录后跳转地址"
// @Success      303 "跳转到 next"
// @Failure      422 {object} response.Response{data=response.FormErrors} "用户名或密码错误"
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	f := form.Bind[dto.LoginForm](c)
	if !f.Valid() {
		response.FormError(c, f.Errors)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: f.Value.Username,
		Password: f.Value.Password,
		ClientIP: c.ClientIP(),
	})
	if errors.Is(err, apperrors.ErrInvalidPassword) {
		response.FormError(c, map[string]string{form.NonFieldKey: apperrors.ErrInvalidPassword.Message})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, result)
	response.Redirect(c, safeNext(f.Value.Next))
}

// Logout 用户登出
// @Summary      用户登出
// @Description  Token加入黑名单、删除会话、清除Cookie，303跳转首页
// @Tags         用户
// @Security     CookieAuth
// @Success      303 "跳转到 /"
// @Router       /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.logout.Execute(c.Request.Context(), middleware.MustGetUserID(c), middleware.GetToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.cookieSecure, true)
	response.Redirect(c, "/")
}

func (h *UserHandler) setTokenCookie(c *gin.Context, result *appuser.LoginResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, result.AccessToken, int(result.ExpiresIn), "/", "", h.cookieSecure, true)
}

// safeNext 只允许站内相对地址，防止开放跳转
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}
