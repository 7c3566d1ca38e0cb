package settle

import (
	"sync"
)

// lifecycleCoordinator encapsulates the OrderedStream shutdown sequence.
// It is a wiring helper: it doesn't own channels; it orchestrates waits and
// channel closures in a deterministic order.
//
// Close() is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	inflight      *sync.WaitGroup
	closeEvents   func()
	waitReorderer func()
	closeResults  func()

	once sync.Once
}

func newLifecycleCoordinator(
	inflight *sync.WaitGroup,
	closeEvents func(),
	waitReorderer func(),
	closeResults func(),
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		inflight:      inflight,
		closeEvents:   closeEvents,
		waitReorderer: waitReorderer,
		closeResults:  closeResults,
	}
}

// Close executes the shutdown sequence exactly once:
// 1) wait for in-flight items to send their completion events
// 2) close events so the reorderer performs its final flush
// 3) wait for the reorderer to exit
// 4) close results
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		if lc.inflight != nil {
			lc.inflight.Wait()
		}
		if lc.closeEvents != nil {
			lc.closeEvents()
		}
		if lc.waitReorderer != nil {
			lc.waitReorderer()
		}
		if lc.closeResults != nil {
			lc.closeResults()
		}
	})
}
