package settle

import (
	"context"
	"time"
)

// Delay blocks for d, or until ctx is done, in which case it returns ctx.Err().
// A non-positive d returns immediately (still reporting an already-done ctx).
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
