package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func record(log *[]string, entry string, err error) func(context.Context) error {
	return func(context.Context) error {
		*log = append(*log, entry)
		return err
	}
}

func TestSaga_AllStepsSucceed(t *testing.T) {
	var calls []string
	s := New("test", zap.NewNop(), time.Second)
	s.AddStep("a", record(&calls, "a", nil), record(&calls, "undo a", nil))
	s.AddStep("b", record(&calls, "b", nil), record(&calls, "undo b", nil))

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	s := New("test", zap.NewNop(), time.Second)
	s.AddStep("a", record(&calls, "a", nil), record(&calls, "undo a", nil))
	s.AddStep("b", record(&calls, "b", nil), nil)
	s.AddStep("c", record(&calls, "c", boom), record(&calls, "undo c", nil))

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "c", "undo a"}, calls)
}

func TestSaga_CompensationFailureIsReported(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	undoFailed := errors.New("undo failed")

	s := New("test", zap.NewNop(), 0)
	s.AddStep("a", record(&calls, "a", nil), record(&calls, "undo a", undoFailed))
	s.AddStep("b", record(&calls, "b", boom), nil)

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, undoFailed)
}

func TestSaga_CompensatesAfterCancel(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())

	s := New("test", nil, 0)
	s.AddStep("a", record(&calls, "a", nil), func(ctx context.Context) error {
		// 补偿阶段的ctx不随请求取消
		if ctx.Err() != nil {
			return ctx.Err()
		}
		calls = append(calls, "undo a")
		return nil
	})
	s.AddStep("cancel", func(context.Context) error {
		cancel()
		return nil
	}, nil)
	s.AddStep("b", record(&calls, "b", nil), nil)

	err := s.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "undo a"}, calls)
}
