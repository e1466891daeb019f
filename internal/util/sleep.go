package util

import (
	"context"
	"time"
)

// Sleeper pauses between calls to external services. Tests swap in a no-op.
type Sleeper func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
