package settle

import "context"

// Wrap normalizes a future into an Outcome. It never panics:
//   - a nil future is not awaitable and yields Fail(ErrNotAwaitable) at once;
//   - a settled future yields its stored outcome, so repeated calls agree;
//   - otherwise Wrap blocks until the future settles or ctx is done, in which
//     case the failure wraps ErrTaskCancelled and ctx.Err().
//
// Example:
//
//	v, err := settle.Wrap(ctx, settle.Go(ctx, fetch)).Unpack()
func Wrap[T any](ctx context.Context, f *Future[T]) Outcome[T] {
	return f.Await(ctx)
}
