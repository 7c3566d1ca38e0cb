package settle

import "context"

// Feedback receives one item's result. EachOrdered calls it once per item,
// strictly in input order, from the calling goroutine.
type Feedback[R any] func(R, error)

// EachOrdered starts op for every item at once and reports each item to feedback
// just in time, in input order: position i is reported as soon as its own operation
// has finished and positions 0..i-1 have been reported. Results that finish early
// are held until every earlier position is reported.
//
// Semantics:
//   - There is no concurrency bound (see EachLimit for that).
//   - An item's failure surfaces only through its feedback call and its Outcome;
//     later positions are still reported.
//   - A nil feedback is a no-op. A nil op fails every item with ErrNotInvocable.
//   - The returned slice holds one Outcome per item in input order; the returned
//     error is non-nil only when an option is invalid.
func EachOrdered[T, R any](
	ctx context.Context,
	items []T,
	op Operation[T, R],
	feedback Feedback[R],
	opts ...Option,
) ([]Outcome[R], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	b := newBatch("settle.each_ordered", cfg)
	b.log.Debug().Int("items", len(items)).Msg("batch started")

	pending := make([]*Future[R], len(items))
	for i, v := range items {
		pending[i] = invokeItem(ctx, b, op, workItem[T]{value: v, index: i})
	}

	results := make([]Outcome[R], 0, len(items))
	for _, f := range pending {
		out := f.Wait()
		if feedback != nil {
			feedback(out.Value, out.Err)
		}
		results = append(results, out)
	}

	b.finish(len(results), countFailed(results))
	return results, nil
}
