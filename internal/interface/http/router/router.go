// Package router 组装gin引擎：中间件链和全部路由
package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// New 创建gin引擎并注册路由
//
// 中间件顺序：Recovery → Tracing → Logger → Metrics → CORS → 路由级认证
func New(
	cfg *config.Config,
	log *zap.Logger,
	books *handler.BookHandler,
	users *handler.UserHandler,
	profile *handler.ProfileHandler,
	auth *middleware.AuthMiddleware,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		// 文档由 swag init -g cmd/api/main.go 生成到docs包
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	// 本地封面由本服务提供，public_url为CDN地址时由CDN提供
	if cfg.Storage.Driver == "local" && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		r.Static(cfg.Storage.PublicURL, cfg.Storage.LocalDir)
	}

	// 公开页面，登录用户额外看到自己的评分和编辑权限
	public := r.Group("", auth.OptionalAuth())
	{
		public.GET("/", books.ListBooks)
		public.GET("/books/:id", books.BookDetail)
		public.POST("/signup", users.Signup)
		public.POST("/login", users.Login)
	}

	authorized := r.Group("", auth.RequireAuth())
	{
		authorized.POST("/books/:id", books.ReviewBook)
		authorized.POST("/books/create", books.CreateBook)
		authorized.GET("/books/update/:id", books.EditBook)
		authorized.POST("/books/update/:id", books.UpdateBook)
		authorized.POST("/books/delete/:id", books.DeleteBook)

		authorized.POST("/logout", users.Logout)
		authorized.GET("/profile", profile.Show)
		authorized.POST("/profile", profile.Update)
	}

	return r
}
