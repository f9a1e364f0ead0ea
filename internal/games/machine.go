package games

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

// FinishFunc is called once per completed session, after the engine has
// released its lock, so it may call back into the engine.
type FinishFunc func(Result)

type options struct {
	onFinish       FinishFunc
	questions      QuestionBank
	texts          map[string][]string
	reactionWindow int
	whackTiming    map[string]WhackTiming
}

type Option func(*options)

// WithFinishHook registers fn to receive every finished result.
func WithFinishHook(fn FinishFunc) Option {
	return func(o *options) { o.onFinish = fn }
}

// WithQuestionBank replaces the quiz questions.
func WithQuestionBank(bank QuestionBank) Option {
	return func(o *options) { o.questions = bank }
}

// WithTexts replaces the typing passages, keyed by difficulty.
func WithTexts(texts map[string][]string) Option {
	return func(o *options) { o.texts = texts }
}

// WithReactionWindow sets how many seconds the reaction game waits for a
// click after the go signal.
func WithReactionWindow(seconds int) Option {
	return func(o *options) {
		if seconds > 0 {
			o.reactionWindow = seconds
		}
	}
}

// WithWhackTiming overrides the spawn and display times of whack difficulties.
func WithWhackTiming(timing map[string]WhackTiming) Option {
	return func(o *options) { o.whackTiming = timing }
}

func buildOptions(opts []Option) options {
	o := options{reactionWindow: DefaultReactionWindowSeconds}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// machine is the state shared by every engine. Engines lock it around every
// operation; timers created through after/every run under the same lock and
// become no-ops once the epoch that scheduled them has passed.
type machine struct {
	mu       sync.Mutex
	id       ID
	sched    scheduler.Scheduler
	rand     rng.Source
	onFinish FinishFunc

	cfg          Config
	session      Session
	playingSince time.Time
	result       *Result
	pending      *Result

	epoch     uint64
	clock     scheduler.Handle
	timers    map[uint64]scheduler.Handle
	nextTimer uint64
}

func newMachine(id ID, sched scheduler.Scheduler, src rng.Source, o options) *machine {
	return &machine{
		id:       id,
		sched:    sched,
		rand:     src,
		onFinish: o.onFinish,
		session:  Session{GameID: id, Status: StatusMenu},
		timers:   make(map[uint64]scheduler.Handle),
	}
}

func (m *machine) lock() { m.mu.Lock() }

// unlock releases the lock and then delivers a result produced while it was
// held.
func (m *machine) unlock() {
	r := m.pending
	m.pending = nil
	m.mu.Unlock()
	if r != nil && m.onFinish != nil {
		m.onFinish(*r)
	}
}

// begin abandons whatever was running and opens a fresh session.
func (m *machine) begin(cfg Config, status Status, seconds int) {
	m.cancelTimers()
	m.epoch++
	m.cfg = cfg
	m.result = nil
	m.session = Session{
		ID:                   uuid.NewString(),
		GameID:               m.id,
		Difficulty:           cfg.Difficulty,
		Mode:                 cfg.Mode,
		StartedAt:            m.sched.Now(),
		TimeRemainingSeconds: seconds,
		Status:               status,
	}
	if status == StatusPlaying {
		m.playingSince = m.session.StartedAt
	}
}

func (m *machine) to(status Status) bool {
	if !CanTransition(m.session.Status, status) {
		return false
	}
	m.session.Status = status
	if status == StatusPlaying {
		m.playingSince = m.sched.Now()
	}
	return true
}

func (m *machine) playing() bool { return m.session.Status == StatusPlaying }

func (m *machine) canRetry() error {
	if m.session.Status != StatusFinished {
		return ErrNotFinished
	}
	return nil
}

func (m *machine) guard(fn func()) func() {
	epoch := m.epoch
	return func() {
		m.lock()
		defer m.unlock()
		if m.epoch != epoch {
			return
		}
		fn()
	}
}

// after schedules fn under the machine lock and returns an id for stop.
func (m *machine) after(d time.Duration, fn func()) uint64 {
	m.nextTimer++
	id := m.nextTimer
	m.timers[id] = m.sched.After(d, m.guard(func() {
		delete(m.timers, id)
		fn()
	}))
	return id
}

func (m *machine) stop(id uint64) {
	if h, ok := m.timers[id]; ok {
		h.Cancel()
		delete(m.timers, id)
	}
}

// startClock drives tick once a second while the session is playing.
func (m *machine) startClock(tick func()) {
	if m.clock != nil {
		m.clock.Cancel()
	}
	m.clock = m.sched.Every(time.Second, m.guard(func() {
		if m.playing() {
			tick()
		}
	}))
}

func (m *machine) cancelTimers() {
	if m.clock != nil {
		m.clock.Cancel()
		m.clock = nil
	}
	for id, h := range m.timers {
		h.Cancel()
		delete(m.timers, id)
	}
}

// countdown takes one second off the clock and reports whether it ran out.
func (m *machine) countdown() bool {
	if m.session.TimeRemainingSeconds > 0 {
		m.session.TimeRemainingSeconds--
	}
	return m.session.TimeRemainingSeconds == 0
}

// finish cancels every pending timer and moves to finished. It fills in the
// session fields of r and queues it for the finish hook.
func (m *machine) finish(r Result) {
	if !m.to(StatusFinished) {
		return
	}
	m.cancelTimers()
	m.epoch++
	now := m.sched.Now()
	r.SessionID = m.session.ID
	r.GameID = m.id
	r.Difficulty = m.cfg.Difficulty
	r.Mode = m.cfg.Mode
	r.Key = ScoreKey(m.id, m.cfg)
	r.FinishedAt = now
	r.Duration = now.Sub(m.playingSince)
	r.DurationMs = r.Duration.Milliseconds()
	m.result = &r
	cp := r
	m.pending = &cp
}

func (m *machine) reset() {
	m.cancelTimers()
	m.epoch++
	m.result = nil
	m.session = Session{GameID: m.id, Difficulty: m.cfg.Difficulty, Mode: m.cfg.Mode, Status: StatusMenu}
}

func (m *machine) snapshot() Session {
	m.lock()
	defer m.unlock()
	return m.session
}

func (m *machine) lastResult() (Result, bool) {
	m.lock()
	defer m.unlock()
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}
