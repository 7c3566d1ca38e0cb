package settle

import (
	"context"
	"strconv"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	"github.com/ygrebnov/errorc"
)

// RetryPolicy describes how many times an operation is tried and how long to wait
// between tries.
type RetryPolicy struct {
	// Attempts is the maximum number of tries, at least 1.
	Attempts int

	// Initial is the first backoff duration. Zero retries without waiting.
	Initial time.Duration

	// Max caps the backoff duration. Zero means Initial.
	Max time.Duration
}

func (p RetryPolicy) validate() error {
	if p.Attempts <= 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("retry.attempts", strconv.Itoa(p.Attempts)))
	}
	if p.Initial < 0 || p.Max < 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "retry durations must not be negative"))
	}
	return nil
}

// nextDelay returns a generator of waits between tries.
func (p RetryPolicy) nextDelay() func() time.Duration {
	if p.Initial <= 0 {
		return func() time.Duration { return 0 }
	}
	maxDelay := p.Max
	if maxDelay < p.Initial {
		maxDelay = p.Initial
	}
	bo := boff.New(p.Initial, maxDelay, time.Now().UnixNano())
	return bo.Next
}

// ReverseOrder runs ops one at a time from the last to the first. Each op is tried
// up to the configured RetryPolicy.Attempts (see WithRetry; default 1), waiting
// with backoff between tries. The first op that still fails stops the run and its
// index and error are returned; a nil op fails at once with ErrNotInvocable.
// On success the index is -1.
func ReverseOrder(ctx context.Context, ops []func(context.Context) error, opts ...Option) (int, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return -1, err
	}

	b := newBatch("settle.reverse_order", cfg)
	op := Operation[int, struct{}](func(c context.Context, i int) (struct{}, error) {
		return struct{}{}, ops[i](c)
	})

	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i] == nil {
			b.finish(len(ops)-i, 1)
			return i, b.tag(ErrNotInvocable, i)
		}
		if err := runWithRetry(ctx, b, op, i); err != nil {
			b.finish(len(ops)-i, 1)
			return i, err
		}
	}

	b.finish(len(ops), 0)
	return -1, nil
}

// runWithRetry runs ops[index] through op until it succeeds or runs out of tries.
func runWithRetry(ctx context.Context, b *batch, op Operation[int, struct{}], index int) error {
	pol := b.cfg.Retry
	next := pol.nextDelay()

	for attempt := 1; ; attempt++ {
		out := runItem(ctx, b, op, workItem[int]{value: index, index: index})
		if out.Err == nil {
			return nil
		}
		if attempt >= pol.Attempts {
			return out.Err
		}

		delay := next()
		b.log.Warn().
			Int("index", index).
			Int("attempt", attempt).
			Dur("sleep", delay).
			Err(out.Err).
			Msg("attempt failed; backing off")
		if err := Delay(ctx, delay); err != nil {
			return out.Err
		}
	}
}
