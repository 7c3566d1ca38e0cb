package settle

import (
	"context"
	"strconv"

	"github.com/ygrebnov/errorc"
)

// EachLimit applies op to every item with at most limit operations running at once,
// and returns one Outcome per item in input order.
//
// Semantics:
//   - Arguments are validated before anything runs: limit <= 0 returns ErrInvalidLimit,
//     a nil op returns ErrNotInvocable, a failing option returns its error.
//   - limit is clamped to len(items). Exactly limit operations run concurrently until
//     fewer than limit items remain unstarted; a finished operation's slot is refilled
//     at once, whatever the completion order. Items start in input order.
//   - A failing or panicking item is recorded as a failed Outcome and does not stop
//     the others.
//   - Empty (or nil) items return an empty slice without invoking op.
//   - ctx is passed to op. Started operations are always waited for; items that have
//     not started when ctx is done are recorded as failures wrapping ErrTaskCancelled.
//
// The returned error is non-nil only for validation failures.
func EachLimit[T, R any](
	ctx context.Context,
	items []T,
	limit int,
	op Operation[T, R],
	opts ...Option,
) ([]Outcome[R], error) {
	if limit <= 0 {
		return nil, errorc.With(ErrInvalidLimit, errorc.String("limit", strconv.Itoa(limit)))
	}
	if op == nil {
		return nil, ErrNotInvocable
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []Outcome[R]{}, nil
	}
	if limit > len(items) {
		limit = len(items)
	}

	b := newBatch("settle.each_limit", cfg)
	b.log.Debug().Int("items", len(items)).Int("limit", limit).Msg("batch started")

	s := newBoundedScheduler(items, op, b)
	results := s.run(ctx, limit)

	b.finish(s.completed(), countFailed(results))
	return results, nil
}
