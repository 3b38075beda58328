// Package retry re-runs short idempotent operations that failed on a
// transient error. The delay between attempts starts at a fixed value and
// doubles after each failure.
package retry

import (
	"context"
	"time"
)

// DefaultAttempts and DefaultDelay match the values used by the public
// read handlers.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Do calls fn up to attempts times. The first retry waits delay; every
// later retry waits twice the previous wait. It returns nil as soon as fn
// succeeds and the last error once attempts are exhausted. A cancelled
// context cuts the wait short and returns ctx.Err().
func Do(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
