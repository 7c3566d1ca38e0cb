package settle

import (
	"context"
	"fmt"
	"sync"
)

// Future is an awaitable unit of work with exactly two eventual states:
// success with a value or failure with an error. A Future settles once; its
// outcome never changes afterwards.
//
// The zero value is not usable; construct futures with Go, Resolved, Rejected
// or Invoke.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	out  Outcome[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// settle stores the outcome and releases waiters. Later calls are ignored.
func (f *Future[T]) settle(o Outcome[T]) {
	f.once.Do(func() {
		f.out = o
		close(f.done)
	})
}

// Resolved returns an already-settled successful future.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.settle(Ok(v))
	return f
}

// Rejected returns an already-settled failed future.
func Rejected[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.settle(Fail[T](err))
	return f
}

// Go runs fn on a new goroutine and returns a future settled with its result.
// A panic inside fn settles the future with an error wrapping ErrTaskPanicked.
// A nil fn yields a future rejected with ErrNotInvocable.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	if fn == nil {
		return Rejected[T](ErrNotInvocable)
	}
	f := newFuture[T]()
	go func() {
		f.settle(call(ctx, fn))
	}()
	return f
}

// Done returns a channel closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future settles and returns its outcome.
// Calling Wait on a nil future returns a failure with ErrNotAwaitable.
func (f *Future[T]) Wait() Outcome[T] {
	if f == nil {
		return Fail[T](ErrNotAwaitable)
	}
	<-f.done
	return f.out
}

// Await is like Wait but gives up when ctx is done first, returning a failure
// wrapping ErrTaskCancelled. A settled future always returns its own outcome.
func (f *Future[T]) Await(ctx context.Context) Outcome[T] {
	if f == nil {
		return Fail[T](ErrNotAwaitable)
	}

	// settled futures win over a done context
	select {
	case <-f.done:
		return f.out
	default:
	}

	select {
	case <-f.done:
		return f.out
	case <-ctx.Done():
		return Fail[T](fmt.Errorf("%w: %w", ErrTaskCancelled, ctx.Err()))
	}
}

// call runs fn in a guarded scope, converting a returned error or a panic into
// a failed Outcome.
func call[R any](ctx context.Context, fn func(context.Context) (R, error)) (out Outcome[R]) {
	defer func() {
		if ePanic := recover(); ePanic != nil {
			out = Fail[R](fmt.Errorf("%w: %v", ErrTaskPanicked, ePanic))
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		return Fail[R](err)
	}
	return Ok(v)
}
