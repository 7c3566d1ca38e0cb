package settle

// reorderer is a small internal component that enforces outcome emission order.
// It consumes completion events and emits outcomes to the provided sink strictly
// in the original input order. See preserve_order.go for the detailed contract.
//
// The reorderer runs in a single goroutine via run() and never closes the results
// channel; shutdown is coordinated by the owner by closing the events channel.
type reorderer[R any] struct {
	// inputs/outputs
	events  <-chan completionEvent[R]
	results chan<- Outcome[R]

	// emitted and failed are owned by the run goroutine; read them only after run returns.
	emitted int
	failed  int
}

func newReorderer[R any](events <-chan completionEvent[R], results chan<- Outcome[R]) *reorderer[R] {
	return &reorderer[R]{events: events, results: results}
}

// run executes the coordinator loop until the events channel is closed.
// It maintains an in-order cursor and an in-memory buffer for out-of-order completions.
func (r *reorderer[R]) run() {
	next := 0
	buf := make(map[int]Outcome[R])

	for ev := range r.events {
		buf[ev.idx] = ev.out
		next = r.flushContiguous(next, buf)
	}

	// Only a contiguous prefix from the cursor can be emitted; gaps stop the flush.
	r.flushContiguous(next, buf)
}

// flushContiguous emits consecutive buffered outcomes starting from `next`.
// Returns the advanced cursor value.
func (r *reorderer[R]) flushContiguous(next int, buf map[int]Outcome[R]) int {
	for {
		out, ok := buf[next]
		if !ok {
			return next
		}
		r.results <- out
		r.emitted++
		if out.Err != nil {
			r.failed++
		}
		delete(buf, next)
		next++
	}
}
