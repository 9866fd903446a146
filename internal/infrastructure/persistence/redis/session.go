package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Key设计：
//
//	session:{user_id}   登录信息（用户名、登录时间、IP）
//	blacklist:{token}   已登出的Token，过期时间为Token剩余有效期
const (
	sessionKeyPrefix   = "session:"
	blacklistKeyPrefix = "blacklist:"
)

// SessionStore 基于Redis的会话存储
type SessionStore struct {
	client redis.UniversalClient
}

var _ user.SessionStore = (*SessionStore)(nil)

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存用户会话，HSet与Expire放在同一个事务管道里
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, data)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// GetSession 获取用户会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl<=0说明Token已经过期，无需再记录
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKeyPrefix+token, "revoked", ttl).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否已登出
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return n > 0, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}
