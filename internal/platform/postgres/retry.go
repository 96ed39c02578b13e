package postgres

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	defaultMaxAttempts  = 5
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	retryable    func(error) bool
}

// RetryOption configures WithRetry.
type RetryOption func(*retryConfig)

func WithMaxAttempts(n int) RetryOption {
	return func(c *retryConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d >= 0 {
			c.baseDelay = d
		}
	}
}

// WithRetryable replaces the default IsRetryable classifier.
func WithRetryable(fn func(error) bool) RetryOption {
	return func(c *retryConfig) {
		if fn != nil {
			c.retryable = fn
		}
	}
}

// WithRetry runs fn with exponential backoff, retrying only errors the
// classifier accepts. Schedule with defaults: 0, 10, 20, 40, 80 ms plus jitter.
func WithRetry(ctx context.Context, fn func(context.Context) error, opts ...RetryOption) error {
	cfg := retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
		retryable:    IsRetryable,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.baseDelay * time.Duration(1<<(attempt-1))
			delay += time.Duration(rand.Float64() * float64(delay) * cfg.jitterFactor)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil || !cfg.retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
