package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type signup struct {
	Username        string `form:"username" binding:"required,max=5"`
	Email           string `form:"email" binding:"omitempty,email"`
	Password        string `form:"password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
	Age             uint   `form:"age"`
}

func bind(values url.Values) Result[signup] {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return Bind[signup](c)
}

func TestBind_Valid(t *testing.T) {
	r := bind(url.Values{
		"username": {"bob"}, "email": {"bob@example.com"},
		"password": {"pw"}, "password_confirm": {"pw"}, "age": {"30"},
	})
	assert.True(t, r.Valid())
	assert.Equal(t, "bob", r.Value.Username)
	assert.Equal(t, uint(30), r.Value.Age)
}

func TestBind_FieldErrorsUseFormNames(t *testing.T) {
	r := bind(url.Values{
		"username": {"toolongname"}, "email": {"nope"},
		"password": {"pw"}, "password_confirm": {"other"},
	})
	assert.False(t, r.Valid())
	assert.Equal(t, "不能超过5个字符", r.Errors["username"])
	assert.Equal(t, "请输入有效的邮箱地址", r.Errors["email"])
	assert.Equal(t, "两次输入的密码不一致", r.Errors["password_confirm"])
	assert.NotContains(t, r.Errors, "password")
}

func TestBind_Required(t *testing.T) {
	r := bind(url.Values{})
	assert.Equal(t, "此项为必填项", r.Errors["username"])
	assert.Equal(t, "此项为必填项", r.Errors["password"])
}

func TestBind_MalformedValue(t *testing.T) {
	r := bind(url.Values{"username": {"bob"}, "password": {"pw"}, "password_confirm": {"pw"}, "age": {"old"}})
	assert.False(t, r.Valid())
	assert.Contains(t, r.Errors, NonFieldKey)
}

func TestAddError_KeepsFirst(t *testing.T) {
	var r Result[signup]
	r.AddError("title", "first")
	r.AddError("title", "second")
	assert.Equal(t, "first", r.Errors["title"])
}

func TestFieldErrors(t *testing.T) {
	errDup := apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已被占用")
	fields := map[error]string{errDup: "username"}

	assert.Equal(t, map[string]string{"username": "用户名已被占用"}, FieldErrors(errDup, fields))
	assert.Nil(t, FieldErrors(apperrors.ErrInternal, fields))
}
