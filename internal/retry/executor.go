package retry

import (
	"context"
	"time"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// OnRetryFunc is called before each retry with the zero-based retry
// number, the error that caused it and the wait that follows.
type OnRetryFunc func(attempt int, err error, delay time.Duration)

// Executor runs an operation until it succeeds, fails fatally, or the
// strategy runs out of attempts. An Executor is immutable once built.
type Executor struct {
	classifier csv2table.ErrorClassifier
	strategy   csv2table.BackoffStrategy
	onRetry    OnRetryFunc
}

// NewExecutor returns an executor. It panics if either argument is nil.
func NewExecutor(classifier csv2table.ErrorClassifier, strategy csv2table.BackoffStrategy) *Executor {
	if classifier == nil || strategy == nil {
		panic("retry: classifier and strategy are required")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that reports each retry to fn.
func (e *Executor) WithOnRetry(fn OnRetryFunc) *Executor {
	c := *e
	c.onRetry = fn
	return &c
}

// Execute runs op, retrying transient failures. It returns the last error
// from op, or the context's error if the context ends while waiting.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	limit := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if limit >= 0 && attempt >= limit {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}
		err = op(ctx)
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
