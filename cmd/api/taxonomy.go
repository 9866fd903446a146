package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// 分类和标签没有HTTP维护入口，通过命令行管理

func CategoryCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "category", Short: "管理图书分类"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "新增分类",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBookService(cmd.Context(), func(ctx context.Context, svc book.Service) error {
					c, err := svc.CreateCategory(ctx, args[0])
					if err != nil {
						return err
					}
					cmd.Printf("已创建分类 #%d %s\n", c.ID, c.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "列出所有分类",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBookService(cmd.Context(), func(ctx context.Context, svc book.Service) error {
					categories, err := svc.Categories(ctx)
					if err != nil {
						return err
					}
					for _, c := range categories {
						cmd.Printf("%d\t%s\n", c.ID, c.Name)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func TagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "tag", Short: "管理图书标签"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>...",
			Short: "新增一个或多个标签",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBookService(cmd.Context(), func(ctx context.Context, svc book.Service) error {
					for _, name := range args {
						t, err := svc.CreateTag(ctx, name)
						if err != nil {
							return fmt.Errorf("创建标签%q失败: %w", name, err)
						}
						cmd.Printf("已创建标签 #%d %s\n", t.ID, t.Name)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "列出所有标签",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withBookService(cmd.Context(), func(ctx context.Context, svc book.Service) error {
					tags, err := svc.Tags(ctx)
					if err != nil {
						return err
					}
					names := make([]string, len(tags))
					for i, t := range tags {
						names[i] = fmt.Sprintf("%d:%s", t.ID, t.Name)
					}
					cmd.Println(strings.Join(names, " "))
					return nil
				})
			},
		},
	)
	return cmd
}

func withBookService(ctx context.Context, fn func(context.Context, book.Service) error) error {
	cfg, log, flush, err := bootstrap()
	if err != nil {
		return err
	}
	defer flush()

	svc, cleanup, err := InitializeBookService(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, svc)
}
