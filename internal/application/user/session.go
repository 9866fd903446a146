package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// sessionIssuer 签发Token并记录会话，登录和注册共用
type sessionIssuer struct {
	jwtManager *jwt.Manager
	sessions   user.SessionStore
	log        *zap.Logger
}

// issue 会话写入失败不影响登录，Token本身已经可用
func (s *sessionIssuer) issue(ctx context.Context, u *user.User, clientIP string) (*LoginResponse, error) {
	token, err := s.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       clientIP,
	}
	ttl := time.Duration(token.ExpiresIn) * time.Second
	if err := s.sessions.SaveSession(ctx, u.ID, data, ttl); err != nil {
		s.log.Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:        toUserInfo(u),
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

// LoginResponse 登录/注册成功后的响应
type LoginResponse struct {
	User        UserInfo  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"` // 秒
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserInfo 用户信息（不含密码）
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	JoinedAt  string `json:"joined_at"`
}

func toUserInfo(u *user.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		JoinedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
