package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// LoginUseCase 用户登录用例
// 1. 验证用户名密码
// 2. 签发JWT
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService user.Service
	issuer      *sessionIssuer
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessions user.SessionStore,
	log *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		issuer:      &sessionIssuer{jwtManager: jwtManager, sessions: sessions, log: log},
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "Login")
	defer func() { tracing.End(span, err) }()

	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, "failure")
		return nil, err
	}

	metrics.IncCounterVec(metrics.LoginsTotal, "success")
	return uc.issuer.issue(ctx, u, req.ClientIP)
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	sessions   user.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessions user.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessions: sessions}
}

// Execute 删除会话，并把Token在剩余有效期内加入黑名单
// Token已经无效时只删除会话
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessions.DeleteSession(ctx, userID); err != nil {
		return err
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil
	}
	return uc.sessions.AddToBlacklist(ctx, accessToken, claims.Remaining())
}
