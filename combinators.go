package settle

import "context"

// indexedOutcome is an outcome tagged with the position of its future.
type indexedOutcome[T any] struct {
	index int
	out   Outcome[T]
}

// fanIn normalizes every future on its own goroutine and delivers the outcomes in
// settlement order. The channel is buffered for all futures, so early returns by
// the reader never leave a sender blocked.
func fanIn[T any](ctx context.Context, futures []*Future[T]) <-chan indexedOutcome[T] {
	ch := make(chan indexedOutcome[T], len(futures))
	for i, f := range futures {
		go func() {
			ch <- indexedOutcome[T]{index: i, out: Wrap(ctx, f)}
		}()
	}
	return ch
}

// AllSettled waits for every future and returns their outcomes in input order.
// It never fails; a nil future yields Fail(ErrNotAwaitable) in its slot.
func AllSettled[T any](ctx context.Context, futures []*Future[T]) []Outcome[T] {
	results := make([]Outcome[T], len(futures))
	for i, f := range futures {
		results[i] = Wrap(ctx, f)
	}
	return results
}

// All returns the values of all futures in input order, or the first failure to
// settle together with its index. failedIndex is -1 when every future succeeded.
func All[T any](ctx context.Context, futures []*Future[T]) (values []T, failedIndex int, err error) {
	values = make([]T, len(futures))
	if len(futures) == 0 {
		return values, -1, nil
	}

	ch := fanIn(ctx, futures)
	for range futures {
		r := <-ch
		if r.out.Err != nil {
			return nil, r.index, r.out.Err
		}
		values[r.index] = r.out.Value
	}
	return values, -1, nil
}

// Any returns the first successful value and its index. When every future fails,
// index is -1 and errs holds all errors in input order. With no futures it returns
// the zero value, -1 and nil.
func Any[T any](ctx context.Context, futures []*Future[T]) (value T, index int, errs []error) {
	if len(futures) == 0 {
		return value, -1, nil
	}

	collected := make([]error, len(futures))
	ch := fanIn(ctx, futures)
	for range futures {
		r := <-ch
		if r.out.Err == nil {
			return r.out.Value, r.index, nil
		}
		collected[r.index] = r.out.Err
	}
	return value, -1, collected
}

// Race returns the outcome of the first future to settle and its index.
// With no futures it returns a zero Outcome and -1.
func Race[T any](ctx context.Context, futures []*Future[T]) (Outcome[T], int) {
	if len(futures) == 0 {
		return Outcome[T]{}, -1
	}
	r := <-fanIn(ctx, futures)
	return r.out, r.index
}
