// Package retry is the shared helper for flaky outbound calls: up to three
// attempts, exponential backoff, and a hard per-attempt timeout.
package retry

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultAttempts       = 3
	DefaultBaseDelay      = 500 * time.Millisecond
	DefaultAttemptTimeout = 10 * time.Second
)

// Do runs fn until it succeeds or attempts are exhausted. Each attempt gets
// its own deadline; the delay between attempts doubles. A cancelled parent
// context stops the loop immediately and its error wins.
func Do(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := DefaultBaseDelay

	for attempt := 1; attempt <= DefaultAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, DefaultAttemptTimeout)
		lastErr = fn(attemptCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < DefaultAttempts {
			slog.Warn("Retrying after failure", "op", label, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}
	return lastErr
}
