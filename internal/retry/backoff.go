package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// ExponentialBackoff grows the delay by a multiplier per attempt, capped at
// a maximum, with optional symmetric jitter.
type ExponentialBackoff struct {
	initial     time.Duration
	max         time.Duration
	multiplier  float64
	maxAttempts int

	// jitter is the relative spread: 0.1 means +/- 10%.
	jitter float64
	random func() float64
}

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initial = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.max = d }
}

// WithMultiplier sets the per-attempt growth factor.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the relative jitter in [0, 1]. Zero disables it.
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithRandom replaces the [0, 1) source used for jitter. Tests pass a constant.
func WithRandom(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.random = f }
}

// NewExponentialBackoff returns a strategy allowing maxAttempts retries
// (-1 for unlimited), starting at 100ms, doubling, capped at 30s, 10% jitter.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initial:     csv2table.DefaultRetryInitialDelay,
		max:         csv2table.DefaultRetryMaxDelay,
		multiplier:  2,
		maxAttempts: maxAttempts,
		jitter:      0.1,
		random:      rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the wait before retry number attempt (zero-based).
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initial) * math.Pow(b.multiplier, float64(attempt))
	if delay > float64(b.max) || math.IsInf(delay, 0) {
		delay = float64(b.max)
	}

	if b.jitter > 0 {
		// random in [0,1) maps to a factor in [1-jitter, 1+jitter)
		delay *= 1 + b.jitter*(2*b.random()-1)
	}

	return time.Duration(delay).Round(time.Millisecond)
}

// MaxAttempts returns the number of retries allowed after the first attempt.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}
