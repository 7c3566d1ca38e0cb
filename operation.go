package settle

import "context"

// Operation is the canonical per-item operation shape used by all combinators.
// It receives the call context and one input item, and returns a result or an error.
// Use Func / Value / Async to adapt other function signatures.
//
// Example:
//
//	op := settle.Value(func(_ context.Context, n int) int { return n * 2 })
//	_ = op
type Operation[T, R any] func(context.Context, T) (R, error)

// Func adapts func(ctx, T) (R, error) to Operation[T, R].
func Func[T, R any](fn func(context.Context, T) (R, error)) Operation[T, R] {
	return Operation[T, R](fn)
}

// Value adapts a plain-value function; its result is always a success.
func Value[T, R any](fn func(context.Context, T) R) Operation[T, R] {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, v T) (R, error) { return fn(ctx, v), nil }
}

// Async adapts a function returning a Future; the operation settles with the
// future's eventual outcome. A nil future fails with ErrNotAwaitable.
func Async[T, R any](fn func(context.Context, T) *Future[R]) Operation[T, R] {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, v T) (R, error) { return fn(ctx, v).Wait().Unpack() }
}

// Invoke calls op with arg on its own goroutine and returns a future for the result.
// Returned errors and panics both settle the future as a failure, so callers see a
// single failure channel. A nil op yields a future rejected with ErrNotInvocable.
func Invoke[T, R any](ctx context.Context, op Operation[T, R], arg T) *Future[R] {
	if op == nil {
		return Rejected[R](ErrNotInvocable)
	}
	return Go(ctx, func(c context.Context) (R, error) { return op(c, arg) })
}

// run calls op synchronously in a guarded scope.
func (op Operation[T, R]) run(ctx context.Context, arg T) Outcome[R] {
	if op == nil {
		return Fail[R](ErrNotInvocable)
	}
	return call(ctx, func(c context.Context) (R, error) { return op(c, arg) })
}
