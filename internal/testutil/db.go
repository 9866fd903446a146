// Package testutil 测试辅助:内存SQLite数据库与数据准备
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
)

// NewDB 创建已迁移的内存SQLite库,测试结束自动关闭
// 内存库随连接销毁,所以连接池固定为1
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Path:         ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}

	db, err := database.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser 直接写入用户(密码为任意哈希串,不能用于登录)
func CreateUser(t testing.TB, db *gorm.DB, username string) *database.UserModel {
	t.Helper()
	u := &database.UserModel{Username: username, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateUserWithPassword 写入可登录的用户，使用最低bcrypt强度加快测试
func CreateUserWithPassword(t testing.TB, db *gorm.DB, username, password string) *database.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &database.UserModel{Username: username, Password: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateCategory 写入分类
func CreateCategory(t testing.TB, db *gorm.DB, name string) *database.CategoryModel {
	t.Helper()
	c := &database.CategoryModel{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateTag 写入标签
func CreateTag(t testing.TB, db *gorm.DB, name string) *database.TagModel {
	t.Helper()
	tag := &database.TagModel{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}
