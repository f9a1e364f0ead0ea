package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/scheduler"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManual_AfterFiresOnceWhenDue(t *testing.T) {
	m := scheduler.NewManual(epoch)
	calls := 0
	m.After(500*time.Millisecond, func() { calls++ })

	m.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, calls)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	m.Advance(time.Hour)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_NowFollowsFiringTimer(t *testing.T) {
	m := scheduler.NewManual(epoch)
	var seen time.Time
	m.After(300*time.Millisecond, func() { seen = m.Now() })

	m.Advance(time.Second)

	assert.Equal(t, epoch.Add(300*time.Millisecond), seen)
	assert.Equal(t, epoch.Add(time.Second), m.Now())
}

func TestManual_OrderIsDeadlineThenRegistration(t *testing.T) {
	m := scheduler.NewManual(epoch)
	var order []string
	m.After(200*time.Millisecond, func() { order = append(order, "b") })
	m.After(100*time.Millisecond, func() { order = append(order, "a") })
	m.After(200*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManual_EveryRepeatsUntilCancelled(t *testing.T) {
	m := scheduler.NewManual(epoch)
	ticks := 0
	h := m.Every(time.Second, func() { ticks++ })

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	h.Cancel()
	h.Cancel()
	m.Advance(10 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestManual_CallbackCanCancelAnother(t *testing.T) {
	m := scheduler.NewManual(epoch)
	fired := false
	var victim scheduler.Handle
	m.After(time.Second, func() { victim.Cancel() })
	victim = m.After(2*time.Second, func() { fired = true })

	m.Advance(5 * time.Second)

	assert.False(t, fired)
}

func TestManual_CallbackSchedulesInsideWindow(t *testing.T) {
	m := scheduler.NewManual(epoch)
	var at []time.Duration
	m.After(time.Second, func() {
		at = append(at, m.Now().Sub(epoch))
		m.After(time.Second, func() { at = append(at, m.Now().Sub(epoch)) })
	})

	m.Advance(3 * time.Second)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, at)
}

func TestCancelAll_SkipsNil(t *testing.T) {
	m := scheduler.NewManual(epoch)
	fired := false
	h := m.After(time.Second, func() { fired = true })

	scheduler.CancelAll(nil, h)
	m.Advance(time.Minute)

	assert.False(t, fired)
}

func TestReal_AfterAndCancel(t *testing.T) {
	s := scheduler.NewReal()
	done := make(chan struct{})
	s.After(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}

	var fired atomic.Bool
	h := s.After(50*time.Millisecond, func() { fired.Store(true) })
	h.Cancel()
	h.Cancel()
	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestReal_EveryStopsOnCancel(t *testing.T) {
	s := scheduler.NewReal()
	var ticks atomic.Int32
	h := s.Every(5*time.Millisecond, func() { ticks.Add(1) })

	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	h.Cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}
