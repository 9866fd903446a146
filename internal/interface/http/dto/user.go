package dto

import (
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
)

// SignupForm 注册表单
type SignupForm struct {
	Username        string `form:"username" binding:"required,max=150" example:"alice"`
	Email           string `form:"email" binding:"omitempty,email,max=254" example:"alice@example.com"`
	Password        string `form:"password" binding:"required" example:"secret123"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password" example:"secret123"`
}

// LoginForm 登录表单，next为登录后跳转的站内地址
type LoginForm struct {
	Username string `form:"username" binding:"required" example:"alice"`
	Password string `form:"password" binding:"required" example:"secret123"`
	Next     string `form:"next" example:"/books/1"`
}

// ProfileForm 个人资料表单
type ProfileForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150" example:"alice"`
	FirstName string `form:"first_name" json:"first_name" binding:"max=150" example:"Alice"`
	LastName  string `form:"last_name" json:"last_name" binding:"max=150" example:"Liddell"`
	Email     string `form:"email" json:"email" binding:"omitempty,email,max=254" example:"alice@example.com"`
}

// ProfileResponse 个人中心，按section返回不同内容
type ProfileResponse struct {
	Section string             `json:"section" example:"profile"`
	User    *appuser.UserInfo  `json:"user,omitempty"`
	Books   []appbook.BookItem `json:"books,omitempty"`
	Form    *ProfileForm       `json:"form,omitempty"`
}
