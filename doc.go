// Package settle normalizes the completion of synchronous or asynchronous
// operations into a uniform Outcome (value or error) and builds concurrency
// combinators on top of it, so callers coordinate many concurrent operations
// without panics escaping or per-item errors aborting the batch.
//
// Substrate
//   - Outcome[T]: the settled result of one unit of work.
//   - Future[T]: an awaitable unit of work (Go, Resolved, Rejected).
//   - Wrap: normalizes a Future into an Outcome; never panics.
//   - Invoke: runs an Operation in a guarded scope; returned errors and panics
//     share one failure channel.
//
// Combinators
//   - EachLimit: worker pool with a fixed concurrency limit; outcomes in input order.
//   - EachOrdered: unbounded parallelism with feedback delivered strictly in input order.
//   - OrderedStream: channel-fed EachOrdered.
//   - Each, AllSettled, All, Any, Race, Pipe, ReverseOrder, Delay: sibling helpers.
//
// Errors
// Combinators return a non-nil error only when their arguments or options are
// invalid; such calls run nothing. Per-item failures are recorded in the returned
// Outcome slice and never stop sibling items.
//
// Defaults
// Unless overridden by options, the following defaults apply to every call:
//   - Logger: zerolog.Nop()
//   - Metrics: metrics.NoopProvider
//   - ErrorTagging: false
//   - RateLimit: none (a freed slot is refilled immediately)
//   - Retry: one attempt (ReverseOrder only)
//   - StreamBufferSize: 1024 (OrderedStream only)
package settle
