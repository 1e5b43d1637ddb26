package client

import (
	"context"
	"time"
)

// Suggested retry parameters for callers wrapping facade calls.
const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
)

// Retry runs fn up to attempts times with a linearly growing delay between
// tries (delay, 2*delay, ...). It is offered as a utility for callers; no
// facade or backend path invokes it automatically.
func Retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay * time.Duration(attempt)):
		}
	}
	return zero, lastErr
}
