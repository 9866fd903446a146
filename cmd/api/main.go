// @title           Book Catalog API
// @version         1.0
// @description     图书目录：浏览、搜索、评分、评论与图书维护
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in              cookie
// @name            access_token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "bookcatalog",
		Short:         "图书目录服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		// 不带子命令时直接启动HTTP服务
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		ServeCommand(),
		CategoryCommand(),
		TagCommand(),
		EventsCommand(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并创建日志器，所有子命令共用
func bootstrap() (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, cleanup, err := logger.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, cleanup, nil
}
