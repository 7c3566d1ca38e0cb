package settle

// workItem pairs an input value with its original position.
type workItem[T any] struct {
	value T
	index int
}

// pendingQueue is a FIFO of not-yet-started work items, drained front to back.
// It is not safe for concurrent use; the owning scheduler serializes access.
type pendingQueue[T any] struct {
	items []workItem[T]
	head  int
}

func newPendingQueue[T any](values []T) *pendingQueue[T] {
	items := make([]workItem[T], len(values))
	for i, v := range values {
		items[i] = workItem[T]{value: v, index: i}
	}
	return &pendingQueue[T]{items: items}
}

// pop removes and returns the front item. ok is false when the queue is empty.
func (q *pendingQueue[T]) pop() (it workItem[T], ok bool) {
	if q.head >= len(q.items) {
		return it, false
	}
	it = q.items[q.head]
	q.items[q.head] = workItem[T]{} // drop the reference to the value
	q.head++
	return it, true
}

// len returns the number of items left.
func (q *pendingQueue[T]) len() int { return len(q.items) - q.head }
