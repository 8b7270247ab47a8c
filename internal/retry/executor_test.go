package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifierFunc func(error) bool

func (f classifierFunc) IsTransient(err error) bool { return f(err) }

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func onlyTransient() classifierFunc {
	return func(err error) bool { return errors.Is(err, errTransient) }
}

func fastBackoff(attempts int) *ExponentialBackoff {
	return NewExponentialBackoff(attempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := NewExecutor(onlyTransient(), fastBackoff(3)).Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecutor_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	var retries []int

	exec := NewExecutor(onlyTransient(), fastBackoff(5)).
		WithOnRetry(func(attempt int, err error, _ time.Duration) {
			assert.ErrorIs(t, err, errTransient)
			retries = append(retries, attempt)
		})

	err := exec.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{0, 1}, retries)
}

func TestExecutor_StopsOnFatal(t *testing.T) {
	calls := 0
	err := NewExecutor(onlyTransient(), fastBackoff(5)).Execute(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return errTransient
		}
		return errFatal
	})
	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 2, calls)
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := NewExecutor(onlyTransient(), fastBackoff(2)).Execute(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls, "one attempt plus two retries")
}

func TestExecutor_ZeroAttemptsMeansNoRetry(t *testing.T) {
	calls := 0
	err := NewExecutor(onlyTransient(), fastBackoff(0)).Execute(context.Background(), func(context.Context) error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestExecutor_NegativeAttemptsRetryUntilContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	unlimited := NewExponentialBackoff(-1, WithInitialDelay(time.Millisecond), WithMaxDelay(time.Millisecond), WithJitter(0))

	calls := 0
	err := NewExecutor(onlyTransient(), unlimited).Execute(ctx, func(context.Context) error {
		calls++
		if calls == 20 {
			cancel()
		}
		return errTransient
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 20, calls)
}

func TestExecutor_ContextCanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithMaxDelay(time.Hour), WithJitter(0))

	exec := NewExecutor(onlyTransient(), slow).WithOnRetry(func(int, error, time.Duration) { cancel() })
	err := exec.Execute(ctx, func(context.Context) error { return errTransient })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutor_WithOnRetryDoesNotMutate(t *testing.T) {
	base := NewExecutor(onlyTransient(), fastBackoff(1))
	_ = base.WithOnRetry(func(int, error, time.Duration) {})
	assert.Nil(t, base.onRetry)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(onlyTransient(), nil) })
}
