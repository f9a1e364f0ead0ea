package games

import (
	"time"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	ReactionMinDelay             = 1000 * time.Millisecond
	ReactionMaxDelay             = 5000 * time.Millisecond
	DefaultReactionWindowSeconds = 5
	reactionHistoryShown         = 10
)

// ReactionRating labels a reaction time in milliseconds.
func ReactionRating(ms int64) string {
	switch {
	case ms < 200:
		return "Lightning Fast"
	case ms < 250:
		return "Excellent"
	case ms < 300:
		return "Good"
	case ms < 400:
		return "Average"
	default:
		return "Need Practice"
	}
}

type ReactionView struct {
	Session    Session `json:"session"`
	ReactionMs int64   `json:"reactionMs,omitempty"`
	Rating     string  `json:"rating,omitempty"`
	FalseStart bool    `json:"falseStart"`
	History    []int64 `json:"history"`
	AverageMs  int64   `json:"averageMs"`
	Attempts   int     `json:"attempts"`
}

// reaction waits a random delay in ready, then measures the time from the go
// signal to the first click. Clicking before the signal is a false start and
// returns to the menu.
type reaction struct {
	m      *machine
	window int

	goAt       time.Time
	reactionMs int64
	attempted  bool
	falseStart bool
	history    []int64
}

func newReaction(sched scheduler.Scheduler, src rng.Source, o options) *reaction {
	return &reaction{m: newMachine(Reaction, sched, src, o), window: o.reactionWindow}
}

func (g *reaction) ID() ID { return Reaction }

func (g *reaction) Start(cfg Config) error {
	g.m.lock()
	defer g.m.unlock()
	g.begin(Config{})
	return nil
}

func (g *reaction) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg)
	return nil
}

func (g *reaction) begin(cfg Config) {
	g.m.begin(cfg, StatusReady, g.window)
	g.reactionMs = 0
	g.attempted = false
	g.falseStart = false
	span := int((ReactionMaxDelay - ReactionMinDelay) / time.Millisecond)
	delay := ReactionMinDelay + time.Duration(g.m.rand.Intn(span+1))*time.Millisecond
	g.m.after(delay, g.signal)
}

func (g *reaction) signal() {
	if !g.m.to(StatusPlaying) {
		return
	}
	g.goAt = g.m.sched.Now()
	g.m.startClock(g.tick)
}

func (g *reaction) Input(Input) Outcome {
	g.m.lock()
	defer g.m.unlock()

	switch g.m.session.Status {
	case StatusReady:
		g.m.reset()
		g.falseStart = true
		return Outcome{Accepted: true, Message: "too soon"}
	case StatusPlaying:
		ms := g.m.sched.Now().Sub(g.goAt).Milliseconds()
		g.reactionMs = ms
		g.attempted = true
		g.history = append(g.history, ms)
		g.finish()
		return Outcome{Accepted: true, Correct: true, Points: int(ms), Finished: true, Message: ReactionRating(ms)}
	default:
		return ignored("not playing")
	}
}

func (g *reaction) Tick() {
	g.m.lock()
	defer g.m.unlock()
	if g.m.playing() {
		g.tick()
	}
}

func (g *reaction) tick() {
	if g.m.countdown() {
		g.finish()
	}
}

func (g *reaction) finish() {
	r := Result{LowerIsBetter: true, Record: g.attempted, Accuracy: 100}
	if g.attempted {
		r.Score = int(g.reactionMs)
		r.Correct = 1
		r.MaxStreak = 1
	}
	g.m.finish(r)
}

func (g *reaction) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.m.reset()
}

func (g *reaction) Session() Session { return g.m.snapshot() }

func (g *reaction) Result() (Result, bool) { return g.m.lastResult() }

func (g *reaction) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := ReactionView{
		Session:    g.m.session,
		FalseStart: g.falseStart && g.m.session.Status == StatusMenu,
		Attempts:   len(g.history),
		History:    []int64{},
	}
	if g.attempted {
		v.ReactionMs = g.reactionMs
		v.Rating = ReactionRating(g.reactionMs)
	}
	start := len(g.history) - reactionHistoryShown
	if start < 0 {
		start = 0
	}
	v.History = append(v.History, g.history[start:]...)
	if len(g.history) > 0 {
		var sum int64
		for _, ms := range g.history {
			sum += ms
		}
		v.AverageMs = (sum + int64(len(g.history))/2) / int64(len(g.history))
	}
	return v
}
