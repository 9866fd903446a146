// Package form 表单绑定与校验
// 绑定结果统一为Result[T]：Value是解析后的表单，Errors是字段名到提示的映射
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// NonFieldKey 不属于某个字段的错误
const NonFieldKey = "form"

// Result 表单校验结果
type Result[T any] struct {
	Value  T
	Errors map[string]string
}

// Valid 没有任何错误
func (r Result[T]) Valid() bool {
	return len(r.Errors) == 0
}

// AddError 追加字段错误，同一字段只保留第一条
func (r *Result[T]) AddError(field, message string) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	if _, ok := r.Errors[field]; !ok {
		r.Errors[field] = message
	}
}

var setupOnce sync.Once

// setup 校验错误使用form标签中的字段名
func setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// Bind 按Content-Type绑定表单（urlencoded/multipart）并校验
func Bind[T any](c *gin.Context) Result[T] {
	setup()

	var r Result[T]
	if err := c.ShouldBindWith(&r.Value, binding.Form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				r.AddError(fe.Field(), message(fe))
			}
			return r
		}
		r.AddError(NonFieldKey, "表单格式错误")
	}
	return r
}

// FieldErrors 把领域错误映射为字段错误，没有匹配时返回nil
func FieldErrors(err error, fields map[error]string) map[string]string {
	for target, field := range fields {
		if errors.Is(err, target) {
			return map[string]string{field: apperrors.GetAppError(err).Message}
		}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "此项为必填项"
	case "max":
		return fmt.Sprintf("不能超过%s个字符", fe.Param())
	case "min":
		return fmt.Sprintf("不能少于%s个字符", fe.Param())
	case "email":
		return "请输入有效的邮箱地址"
	case "eqfield":
		return "两次输入的密码不一致"
	case "oneof":
		return fmt.Sprintf("只能是以下值之一：%s", fe.Param())
	default:
		return "格式不正确"
	}
}
