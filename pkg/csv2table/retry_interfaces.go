package csv2table

import "time"

// ErrorClassifier decides whether a failed open or ping of the target
// database is worth another attempt before the load gives up.
type ErrorClassifier interface {
	// IsTransient reports whether err looks like a server that is still
	// starting or a dropped network path, rather than bad credentials or a
	// bad connection string.
	IsTransient(err error) bool
}

// BackoffStrategy paces the connect attempts made before CREATE TABLE runs.
type BackoffStrategy interface {
	// NextDelay is the pause before reconnect number attempt; the first
	// reconnect is attempt 0.
	NextDelay(attempt int) time.Duration

	// MaxAttempts caps the reconnects after the first failure. Zero
	// connects once; a negative cap reconnects until the context ends.
	MaxAttempts() int
}
