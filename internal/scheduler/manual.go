package scheduler

import (
	"sync"
	"time"
)

// Manual is a scheduler whose clock only moves when Advance is called. Due
// callbacks run on the goroutine calling Advance, in deadline order; timers
// sharing a deadline fire in the order they were registered.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	m         *Manual
	seq       uint64
	when      time.Time
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTimer) Cancel() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.m.remove(t)
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, interval time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, seq: m.seq, when: m.now.Add(d), interval: interval, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// next returns the earliest timer due at or before deadline.
func (m *Manual) next(deadline time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.when.After(deadline) {
			continue
		}
		if best == nil || t.when.Before(best.when) || (t.when.Equal(best.when) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Advance moves the clock forward by d, firing every callback that falls due.
// Callbacks may schedule or cancel timers; newly scheduled timers that fall
// inside the window fire during the same call.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now.Add(d)
	for {
		t := m.next(deadline)
		if t == nil {
			break
		}
		m.now = t.when
		if t.interval > 0 {
			t.when = t.when.Add(t.interval)
		} else {
			m.remove(t)
			t.cancelled = true
		}
		fn := t.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = deadline
	m.mu.Unlock()
}

// Pending reports how many timers are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
