//go:build wireinject
// +build wireinject

// 修改Provider后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/events"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/storage"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、封面存储、事件发布
var infrastructureSet = wire.NewSet(
	provideDB,
	redis.NewClient,
	provideSessionStore,
	storage.NewCoverStore,
	events.NewPublisher,
	provideJWTManager,
)

var repositorySet = wire.NewSet(
	database.NewUserRepository,
	database.NewBookRepository,
	database.NewCategoryRepository,
	database.NewTagRepository,
	database.NewRatingRepository,
	database.NewCommentRepository,
	database.NewTxManager,
)

var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	rating.NewService,
	comment.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewBookDetailUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewReviewBookUseCase,
	appbook.NewAuthorBooksUseCase,
)

var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewBookHandler,
	handler.NewUserHandler,
	handler.NewProfileHandler,
	router.New,
)

// InitializeServer 组装完整的HTTP服务
func InitializeServer(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}

// InitializeBookService 命令行维护分类和标签只需要数据库
func InitializeBookService(cfg *config.Config, log *zap.Logger) (book.Service, func(), error) {
	wire.Build(
		provideDB,
		database.NewBookRepository,
		database.NewCategoryRepository,
		database.NewTagRepository,
		book.NewService,
	)
	return nil, nil, nil
}
