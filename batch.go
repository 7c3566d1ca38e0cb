package settle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ygrebnov/settle/metrics"
)

// Instrument names recorded through WithMetrics.
const (
	MetricItemsStarted   = "settle_items_started_total"
	MetricItemsCompleted = "settle_items_completed_total"
	MetricItemsErrors    = "settle_items_errors_total"
	MetricItemsInflight  = "settle_items_inflight"
	MetricItemDuration   = "settle_item_duration_seconds"
)

// batch is the per-call execution context shared by the items of one combinator
// call: identity, logger, start limiter and instruments. It is never shared
// between calls.
type batch struct {
	id      uuid.UUID
	cfg     *config
	log     zerolog.Logger
	limiter *rate.Limiter
	begin   time.Time

	started   metrics.Counter
	completed metrics.Counter
	failed    metrics.Counter
	inflight  metrics.UpDownCounter
	duration  metrics.Histogram
}

func newBatch(name string, cfg *config) *batch {
	id := uuid.New()
	p := cfg.Metrics
	return &batch{
		id:        id,
		cfg:       cfg,
		log:       cfg.Logger.With().Str("comp", name).Str("batch", id.String()).Logger(),
		limiter:   cfg.limiter(),
		begin:     time.Now(),
		started:   p.Counter(MetricItemsStarted, metrics.WithUnit("1")),
		completed: p.Counter(MetricItemsCompleted, metrics.WithUnit("1")),
		failed:    p.Counter(MetricItemsErrors, metrics.WithUnit("1")),
		inflight:  p.UpDownCounter(MetricItemsInflight, metrics.WithUnit("1")),
		duration:  p.Histogram(MetricItemDuration, metrics.WithUnit("seconds")),
	}
}

// admit blocks until the item may start. It fails when ctx is already done or
// the start limiter gives up.
func (b *batch) admit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTaskCancelled, err)
	}
	if b.limiter == nil {
		return nil
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTaskCancelled, err)
	}
	return nil
}

// tag wraps err with item metadata when error tagging is enabled.
func (b *batch) tag(err error, index int) error {
	if err == nil || !b.cfg.ErrorTagging {
		return err
	}
	return newTaskTaggedError(err, b.id, index)
}

// finish logs the batch summary.
func (b *batch) finish(items, failed int) {
	b.log.Debug().
		Int("items", items).
		Int("failed", failed).
		Dur("elapsed", time.Since(b.begin)).
		Msg("batch finished")
}

// runItem admits, executes and records a single item synchronously.
func runItem[T, R any](ctx context.Context, b *batch, op Operation[T, R], it workItem[T]) Outcome[R] {
	if err := b.admit(ctx); err != nil {
		return Fail[R](b.tag(err, it.index))
	}

	b.started.Add(1)
	b.inflight.Add(1)
	t0 := time.Now()

	out := op.run(ctx, it.value)

	b.duration.Record(time.Since(t0).Seconds())
	b.inflight.Add(-1)
	b.completed.Add(1)

	if out.Err != nil {
		b.failed.Add(1)
		if errors.Is(out.Err, ErrTaskPanicked) {
			b.log.Warn().Int("index", it.index).Err(out.Err).Msg("item panicked")
		}
		out.Err = b.tag(out.Err, it.index)
	}
	return out
}

// invokeItem is runItem on its own goroutine.
func invokeItem[T, R any](ctx context.Context, b *batch, op Operation[T, R], it workItem[T]) *Future[R] {
	f := newFuture[R]()
	go func() {
		f.settle(runItem(ctx, b, op, it))
	}()
	return f
}

// countFailed returns the number of failed outcomes.
func countFailed[R any](outcomes []Outcome[R]) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
