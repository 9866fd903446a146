package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

func EventsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "领域事件工具"}

	var (
		queue string
		keys  []string
	)
	watch := &cobra.Command{
		Use:   "watch",
		Short: "订阅并打印领域事件",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchEvents(cmd.Context(), queue, keys)
		},
	}
	watch.Flags().StringVar(&queue, "queue", "", "持久化队列名，为空时使用临时队列")
	watch.Flags().StringSliceVar(&keys, "key", []string{"#"}, "routing key，如book.*")

	cmd.AddCommand(watch)
	return cmd
}

func watchEvents(ctx context.Context, queue string, keys []string) error {
	cfg, log, flush, err := bootstrap()
	if err != nil {
		return err
	}
	defer flush()

	if !cfg.MQ.Enabled {
		return errors.New("mq.enabled为false，没有可订阅的事件")
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, queue, keys, log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Consume(ctx, func(_ context.Context, d mq.Delivery) error {
		var e event.Event
		if err := json.Unmarshal(d.Body, &e); err != nil {
			// 格式错误的消息重新入队也无法处理，直接确认
			log.Warn("无法解析事件", zap.String("routing_key", d.RoutingKey), zap.Error(err))
			return nil
		}
		log.Info("收到事件",
			zap.String("event", e.Name),
			zap.Time("occurred_at", e.OccurredAt),
			zap.Any("payload", e.Payload),
		)
		return nil
	})
}
