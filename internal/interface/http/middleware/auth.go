package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// TokenCookie 浏览器登录后保存Access Token的Cookie
const TokenCookie = "access_token"

// LoginPath 未登录时跳转的地址
const LoginPath = "/login"

const (
	ctxUserID = "user_id"
	ctxToken  = "access_token"
)

// AuthMiddleware JWT认证中间件
// 1. 从Authorization头或Cookie提取Token
// 2. 检查Token黑名单
// 3. 验证Token并把用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	sessions   user.SessionStore
	log        *zap.Logger
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessions user.SessionStore, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		sessions:   sessions,
		log:        log,
	}
}

// RequireAuth 要求登录，未登录303跳转到 /login?next=<当前地址>
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := m.authenticate(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.Redirect(c, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录，Token缺失或无效时按匿名用户处理
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.authenticate(c); err != nil {
			m.log.Warn("校验Token失败，按匿名访问处理", zap.Error(err))
		}
		c.Next()
	}
}

// authenticate 返回是否已登录；只有黑名单查询失败才返回error
func (m *AuthMiddleware) authenticate(c *gin.Context) (bool, error) {
	token := extractToken(c)
	if token == "" {
		return false, nil
	}

	claims, err := m.jwtManager.ParseToken(token)
	if err != nil {
		return false, nil
	}

	// 已登出的Token在过期前仍然能通过签名校验
	blacklisted, err := m.sessions.IsInBlacklist(c.Request.Context(), token)
	if err != nil {
		return false, err
	}
	if blacklisted {
		return false, nil
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxToken, token)
	return true, nil
}

// extractToken 优先Authorization: Bearer <token>，其次Cookie
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// GetUserID 当前登录用户ID，匿名返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetToken 当前请求使用的Token（登出时加入黑名单）
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// MustGetUserID 用于RequireAuth之后的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
