// Package saga 跨存储操作的补偿事务
//
// 数据库事务无法覆盖对象存储、消息队列等外部资源。Saga把操作拆成有序步骤，
// 每步带一个补偿操作；某一步失败时按相反顺序补偿已完成的步骤。
//
// 示例（发布图书）：
//
//	s := saga.New("publish_book", log, 30*time.Second)
//	s.AddStep("save_cover", saveCover, deleteCover)
//	s.AddStep("create_book", createBook, nil)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// compensateTimeout 补偿阶段的独立超时
const compensateTimeout = 10 * time.Second

// Step 一个步骤，Compensate可以为nil（最后一步通常不需要补偿）
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 不可并发执行，每次请求新建一个
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
	log      *zap.Logger
}

// New 创建Saga，timeout<=0表示不限时
func New(name string, log *zap.Logger, timeout time.Duration) *Saga {
	if log == nil {
		log = zap.NewNop()
	}
	return &Saga{name: name, timeout: timeout, log: log}
}

// AddStep 追加步骤
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{Name: name, Action: action, Compensate: compensate})
}

// Execute 依次执行所有步骤
// 失败时补偿已完成步骤，返回的错误包装了失败步骤的原始错误（可用errors.Is/As判断）
func (s *Saga) Execute(ctx context.Context) error {
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for _, step := range s.steps {
		if err := runCtx.Err(); err != nil {
			return s.fail(ctx, step.Name, fmt.Errorf("saga超时: %w", err))
		}
		if step.Action != nil {
			if err := step.Action(runCtx); err != nil {
				return s.fail(ctx, step.Name, err)
			}
		}
		s.executed = append(s.executed, step)
	}

	metrics.IncCounterVec(metrics.SagaExecutionsTotal, s.name, "success")
	return nil
}

func (s *Saga) fail(ctx context.Context, stepName string, cause error) error {
	metrics.IncCounterVec(metrics.SagaExecutionsTotal, s.name, "failure")
	s.log.Warn("saga步骤失败，开始补偿",
		zap.String("saga", s.name),
		zap.String("step", stepName),
		zap.Error(cause),
	)

	err := fmt.Errorf("步骤[%s]执行失败: %w", stepName, cause)
	if compErr := s.compensate(ctx); compErr != nil {
		return errors.Join(err, compErr)
	}
	return err
}

// compensate 逆序补偿，单个补偿失败不影响后续补偿
// 使用脱离取消的ctx，请求超时后补偿仍能执行
func (s *Saga) compensate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		metrics.IncCounterVec(metrics.SagaCompensationsTotal, s.name)
		if err := step.Compensate(ctx); err != nil {
			s.log.Error("saga补偿失败",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("补偿[%s]失败: %w", step.Name, err))
		}
	}
	s.executed = nil
	return errors.Join(errs...)
}
