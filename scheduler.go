package settle

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// boundedScheduler runs a fixed number of worker loops over a shared pending queue.
// Each loop pops an item, runs it, writes its outcome into the slot of the item's
// original index and pops again, so a slot is refilled the instant its operation
// finishes. The number of loops is the concurrency bound.
//
// Queue pops, slot writes and the completion counter are guarded by mu; only the
// operation itself runs outside the lock.
type boundedScheduler[T, R any] struct {
	mu      sync.Mutex
	pending *pendingQueue[T]
	results []Outcome[R]
	done    int

	op    Operation[T, R]
	batch *batch
}

func newBoundedScheduler[T, R any](items []T, op Operation[T, R], b *batch) *boundedScheduler[T, R] {
	return &boundedScheduler[T, R]{
		pending: newPendingQueue(items),
		results: make([]Outcome[R], len(items)),
		op:      op,
		batch:   b,
	}
}

// run starts the given number of worker loops and returns the results once every loop has exited.
func (s *boundedScheduler[T, R]) run(ctx context.Context, workers int) []Outcome[R] {
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			s.work(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return s.results
}

// work is one worker loop: pop, run, record, repeat until the queue is empty.
func (s *boundedScheduler[T, R]) work(ctx context.Context) {
	it, ok := s.next()
	for ok {
		out := runItem(ctx, s.batch, s.op, it)
		it, ok = s.completeAndNext(it.index, out)
	}
}

func (s *boundedScheduler[T, R]) next() (workItem[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.pop()
}

// completeAndNext records the outcome for index and pops the next item in one step.
func (s *boundedScheduler[T, R]) completeAndNext(index int, out Outcome[R]) (workItem[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[index] = out
	s.done++
	return s.pending.pop()
}

// completed returns the number of recorded outcomes.
func (s *boundedScheduler[T, R]) completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
