package user

import (
	"strings"
	"time"
)

// User 用户实体（聚合根）
// 密码只保存bcrypt哈希值，不提供任何还原明文的方法
type User struct {
	ID        uint
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string // bcrypt哈希值
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Profile 个人资料中可修改的字段
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateProfile 更新个人资料（领域行为）
func (u *User) UpdateProfile(p Profile) {
	u.Username = strings.TrimSpace(p.Username)
	u.FirstName = strings.TrimSpace(p.FirstName)
	u.LastName = strings.TrimSpace(p.LastName)
	u.Email = strings.TrimSpace(p.Email)
	u.UpdatedAt = time.Now()
}

// FullName 姓名，未填写时返回空串
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
