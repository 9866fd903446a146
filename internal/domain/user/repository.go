package user

import (
	"context"
	"time"
)

// Repository 用户仓储接口
// 接口定义在domain层，具体实现在infrastructure/persistence/database
type Repository interface {
	// Create 创建用户
	// 注意：如果用户名已存在，应返回errors.ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 如果不存在，返回errors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Update 更新用户信息，用户名冲突返回errors.ErrUsernameDuplicate
	Update(ctx context.Context, user *User) error
}

// SessionStore 登录会话与Token黑名单
// 实现在infrastructure/persistence/redis
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error

	// AddToBlacklist 登出后Token在剩余有效期内失效
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}
