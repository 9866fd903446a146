package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// publishTimeout 单次投递超时，不受请求ctx取消影响
const publishTimeout = 3 * time.Second

// broker BrokerPublisher依赖的消息发布能力（*mq.Publisher）
type broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close() error
}

// BrokerPublisher 通过RabbitMQ发布领域事件
// 外层套熔断器：Broker不可用时快速失败，不拖慢请求
type BrokerPublisher struct {
	broker  broker
	breaker *circuitbreaker.CircuitBreaker
	log     *zap.Logger
}

var _ event.Publisher = (*BrokerPublisher)(nil)

// NewBrokerPublisher 包装broker
func NewBrokerPublisher(b broker, log *zap.Logger) *BrokerPublisher {
	cfg := circuitbreaker.DefaultConfig()
	cfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, float64(to), name)
	}

	return &BrokerPublisher{
		broker:  b,
		breaker: circuitbreaker.New("events", cfg),
		log:     log,
	}
}

// Publish 投递事件，结果计入events_published_total
func (p *BrokerPublisher) Publish(ctx context.Context, e event.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.broker.Publish(ctx, e.Name, e)
	})

	switch {
	case err == nil:
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, p.breaker.Name(), "success")
		metrics.IncCounterVec(metrics.EventsPublishedTotal, e.Name, "success")
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, p.breaker.Name(), "rejected")
		metrics.IncCounterVec(metrics.EventsPublishedTotal, e.Name, "dropped")
	default:
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, p.breaker.Name(), "failure")
		metrics.IncCounterVec(metrics.EventsPublishedTotal, e.Name, "failure")
	}
	return err
}

// Close 关闭底层连接
func (p *BrokerPublisher) Close() error {
	return p.broker.Close()
}

// NoopPublisher 未启用消息队列时使用，只记debug日志
type NoopPublisher struct {
	log *zap.Logger
}

func NewNoopPublisher(log *zap.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) Publish(_ context.Context, e event.Event) error {
	p.log.Debug("事件未发布（消息队列未启用）", zap.String("event", e.Name))
	return nil
}

// NewPublisher 按mq.enabled选择实现
// 启用时连接失败直接返回错误，避免静默丢事件
func NewPublisher(cfg *config.Config, log *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NewNoopPublisher(log), func() {}, nil
	}

	b, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, log)
	if err != nil {
		return nil, nil, err
	}

	p := NewBrokerPublisher(b, log)
	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return p, cleanup, nil
}

// Emit 发布事件，失败只记录日志
func Emit(ctx context.Context, p event.Publisher, log *zap.Logger, e event.Event) {
	if err := p.Publish(ctx, e); err != nil {
		log.Warn("发布事件失败", zap.String("event", e.Name), zap.Error(err))
	}
}
