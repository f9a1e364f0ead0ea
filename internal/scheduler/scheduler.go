// Package scheduler abstracts one-shot and repeating timers so game clocks and
// animation loops can run against the wall clock in production and be stepped
// deterministically in tests.
package scheduler

import "time"

// Handle cancels a scheduled callback. Cancel is idempotent; once it returns,
// no further invocation of the callback starts.
type Handle interface {
	Cancel()
}

// Scheduler schedules callbacks relative to its own notion of now.
type Scheduler interface {
	Now() time.Time
	// After runs fn once, d from now.
	After(d time.Duration, fn func()) Handle
	// Every runs fn every d until the returned handle is cancelled.
	Every(d time.Duration, fn func()) Handle
}

// CancelAll cancels every non-nil handle.
func CancelAll(handles ...Handle) {
	for _, h := range handles {
		if h != nil {
			h.Cancel()
		}
	}
}
