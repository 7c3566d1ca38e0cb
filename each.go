package settle

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Each applies op to every item concurrently, without a concurrency bound, and
// returns one Outcome per item in input order once all of them have settled.
// A nil op returns ErrNotInvocable before anything runs.
func Each[T, R any](ctx context.Context, items []T, op Operation[T, R], opts ...Option) ([]Outcome[R], error) {
	if op == nil {
		return nil, ErrNotInvocable
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	b := newBatch("settle.each", cfg)
	results := make([]Outcome[R], len(items))

	var g errgroup.Group
	for i, v := range items {
		g.Go(func() error {
			results[i] = runItem(ctx, b, op, workItem[T]{value: v, index: i})
			return nil
		})
	}
	_ = g.Wait()

	b.finish(len(results), countFailed(results))
	return results, nil
}
