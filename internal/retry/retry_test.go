package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		err := Do(ctx, 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("RecoversAfterFailures", func(t *testing.T) {
		calls := 0
		err := Do(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("ExhaustedReturnsLastError", func(t *testing.T) {
		calls := 0
		last := errors.New("still broken")
		err := Do(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("earlier failure")
			}
			return last
		})
		if !errors.Is(err, last) {
			t.Errorf("err = %v, want the last error", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("DoublingDelay", func(t *testing.T) {
		start := time.Now()
		calls := 0
		_ = Do(ctx, 3, 10*time.Millisecond, func() error {
			calls++
			return errors.New("nope")
		})
		// waits of 10ms then 20ms between the three attempts
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("elapsed %v, want at least 30ms of backoff", elapsed)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("ContextCancelledDuringWait", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		go func() {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}()
		err := Do(cctx, 5, time.Minute, func() error {
			calls++
			return errors.New("transient")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1 before cancellation", calls)
		}
	})

	t.Run("ZeroAttemptsTreatedAsOne", func(t *testing.T) {
		calls := 0
		err := Do(ctx, 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Errorf("err = %v, calls = %d; want nil and exactly one call", err, calls)
		}
	})
}
