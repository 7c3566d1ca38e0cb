package settle

import (
	"context"
	"sync"
)

// OrderedStream is the channel-fed form of EachOrdered. Every item received from in
// starts at once on its own goroutine, and outcomes are emitted on the returned
// channel in the order the items were received. A non-nil error is returned only for
// immediate setup failures (invalid options).
//
// Lifecycle:
//   - Spawns an intake goroutine that reads items from `in` until it is closed or ctx
//     is done. Items still unread at that point are not started.
//   - Every started item is waited for and emitted, even after ctx is done; op sees
//     ctx and may return early.
//   - The returned channel is closed after the last started item has been emitted.
//
// A nil op fails every item with ErrNotInvocable.
func OrderedStream[T, R any](
	ctx context.Context, in <-chan T, op Operation[T, R], opts ...Option,
) (<-chan Outcome[R], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	b := newBatch("settle.ordered_stream", cfg)
	results := make(chan Outcome[R], cfg.StreamBufferSize)
	events := make(chan completionEvent[R], cfg.StreamBufferSize)

	r := newReorderer[R](events, results)
	var reorderWG sync.WaitGroup
	reorderWG.Add(1)
	go func() {
		defer reorderWG.Done()
		r.run()
	}()

	var inflight sync.WaitGroup
	lc := newLifecycleCoordinator(
		&inflight,
		func() { close(events) },
		reorderWG.Wait,
		func() { close(results) },
	)

	go func() {
		b.log.Debug().Msg("stream started")

		idx := 0
		intake := true
		for intake {
			select {
			case <-ctx.Done():
				intake = false
			case v, ok := <-in:
				if !ok {
					intake = false
					break
				}
				it := workItem[T]{value: v, index: idx}
				idx++
				inflight.Add(1)
				go func() {
					defer inflight.Done()
					events <- completionEvent[R]{idx: it.index, out: runItem(ctx, b, op, it)}
				}()
			}
		}

		lc.Close()
		b.finish(r.emitted, r.failed)
	}()

	return results, nil
}
