package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Real schedules callbacks on the runtime timer. Callbacks run on their own
// goroutines, so callers guard shared state themselves.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() *Real { return &Real{} }

func (Real) Now() time.Time { return time.Now() }

type realTimer struct {
	cancelled atomic.Bool
	timer     *time.Timer
}

func (t *realTimer) Cancel() {
	if t.cancelled.Swap(true) {
		return
	}
	t.timer.Stop()
}

func (Real) After(d time.Duration, fn func()) Handle {
	t := &realTimer{}
	t.timer = time.AfterFunc(d, func() {
		if t.cancelled.Load() {
			return
		}
		fn()
	})
	return t
}

type realTicker struct {
	once sync.Once
	done chan struct{}
}

func (t *realTicker) Cancel() {
	t.once.Do(func() { close(t.done) })
}

func (Real) Every(d time.Duration, fn func()) Handle {
	t := &realTicker{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				// Cancel may race with a tick that was already delivered.
				select {
				case <-t.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return t
}
