package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RegisterUseCase 用户注册用例
// 注册成功后直接登录，返回的Token由handler写入Cookie
type RegisterUseCase struct {
	userService user.Service
	issuer      *sessionIssuer
	log         *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessions user.SessionStore,
	log *zap.Logger,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		issuer:      &sessionIssuer{jwtManager: jwtManager, sessions: sessions, log: log},
		log:         log,
	}
}

// RegisterRequest 注册请求，两次密码是否一致由表单层校验
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	ClientIP string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (resp *LoginResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "Register")
	defer func() { tracing.End(span, err) }()

	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.UsersRegisteredTotal)
	uc.log.Info("用户注册成功", zap.Uint("user_id", u.ID), zap.String("username", u.Username))

	return uc.issuer.issue(ctx, u, req.ClientIP)
}
