package background

import (
	"sync"
	"time"

	"github.com/vytor/funzone/internal/scheduler"
)

// Animator steps a Network on a fixed interval and publishes frames. A slow
// consumer only ever sees the latest frame.
type Animator struct {
	mu       sync.Mutex
	net      *Network
	sched    scheduler.Scheduler
	interval time.Duration
	handle   scheduler.Handle
	frames   chan Frame
	stopped  bool
}

func NewAnimator(net *Network, sched scheduler.Scheduler, fps int) *Animator {
	if fps <= 0 {
		fps = 30
	}
	return &Animator{
		net:      net,
		sched:    sched,
		interval: time.Second / time.Duration(fps),
		frames:   make(chan Frame, 1),
	}
}

// Start begins the loop and returns the frame channel, which is closed by
// Stop. Calling Start twice returns the same channel.
func (a *Animator) Start() <-chan Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handle == nil && !a.stopped {
		a.handle = a.sched.Every(a.interval, a.step)
	}
	return a.frames
}

func (a *Animator) step() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.net.Step()
	a.publish(a.net.Frame())
}

func (a *Animator) publish(f Frame) {
	select {
	case a.frames <- f:
	default:
		// replace the stale frame
		select {
		case <-a.frames:
		default:
		}
		a.frames <- f
	}
}

// Resize reseeds the network for new bounds and publishes the result.
func (a *Animator) Resize(width, height float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.net.Resize(width, height)
	a.publish(a.net.Frame())
}

func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.stopped = true
	if a.handle != nil {
		a.handle.Cancel()
	}
	close(a.frames)
}
