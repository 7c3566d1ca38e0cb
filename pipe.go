package settle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Stage is one step of a Pipe. It receives the previous stage's value
// (nil for the first stage).
type Stage func(context.Context, any) (any, error)

// StageOf adapts a typed function to a Stage. A nil input is passed as the zero
// value of T; any other value that is not a T fails with ErrStageInput.
func StageOf[T, R any](fn func(context.Context, T) (R, error)) Stage {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, v any) (any, error) {
		var in T
		if v != nil {
			typed, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("%w: got %T, want %T", ErrStageInput, v, in)
			}
			in = typed
		}
		r, err := fn(ctx, in)
		return r, err
	}
}

// StageAwait adapts a future to a Stage that ignores its input and yields the
// future's eventual outcome.
func StageAwait[T any](f *Future[T]) Stage {
	return func(ctx context.Context, _ any) (any, error) {
		return Wrap(ctx, f).Unpack()
	}
}

// Pipe runs stages in order, feeding each stage's value into the next, and returns
// the last value. The first failing (or panicking) stage stops the pipe and its
// error becomes the outcome. No stages fails with ErrNoStages; a nil stage fails
// with ErrNotInvocable without running any stage after it.
func Pipe(ctx context.Context, stages ...Stage) Outcome[any] {
	if len(stages) == 0 {
		return Fail[any](ErrNoStages)
	}

	var v any
	for i, st := range stages {
		if st == nil {
			return Fail[any](errorc.With(ErrNotInvocable, errorc.String("stage", strconv.Itoa(i))))
		}
		out := call(ctx, func(c context.Context) (any, error) { return st(c, v) })
		if out.Err != nil {
			return out
		}
		v = out.Value
	}
	return Ok(v)
}
