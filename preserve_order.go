package settle

// Reorderer (order-preserving coordinator for OrderedStream)
//
// Responsibility:
// - Consume completion events from item goroutines and emit outcomes strictly in the
//   original input order, regardless of completion order.
//
// Inputs:
// - events <-chan completionEvent[R]: stream of item completions. Each event carries:
//     - idx: input index assigned when the item was received from the input channel,
//     - out: the item's Outcome (success or failure; every item produces exactly one).
// - results chan<- Outcome[R]: outward channel owned by OrderedStream and written by
//   the reorderer.
//
// Dependencies:
// - Internal state only: an integer cursor `next` that tracks the next expected index,
//   and buf map[int]Outcome[R] holding completions received ahead of the cursor.
//
// Semantics:
// - For each incoming completion event, store out at buf[idx], then repeatedly emit
//   buf[next] (delete, next++) while it exists.
// - On events channel close, perform a final flush of any contiguous tail, then return.
//   The reorderer never closes results itself.
//
// Edge cases:
// - Failures occupy their position like successes: a failed item is emitted in order,
//   it never blocks or skips later positions.
// - Out-of-order completions: outcomes are buffered until every prior index has been
//   emitted; only then they are forwarded.
// - Shutdown: OrderedStream closes events only after every started item has sent its
//   event, so the final flush sees no gaps.
//
// Concurrency contracts:
// - Single goroutine: the reorderer runs as one dedicated goroutine reading `events`
//   and writing to `results`. It does not require external synchronization.
// - Backpressure: writes to `results` are synchronous and respect the configured
//   buffer size (WithStreamBuffer). A slow consumer eventually blocks item goroutines
//   on the events channel; it never drops outcomes.

// completionEvent represents an item completion consumed by the reorderer.
type completionEvent[R any] struct {
	idx int
	out Outcome[R]
}
