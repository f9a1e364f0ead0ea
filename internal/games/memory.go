package games

import (
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	memoryMatchPoints  = 100
	memoryStreakPoints = 50
	memoryWinBonus     = 10
)

type memoryLevel struct {
	pairs     int
	timeBonus int
	seconds   int
}

var memoryDifficulties = []Difficulty{
	{Key: "easy", Name: "Easy", Description: "6 pairs in 90 seconds"},
	{Key: "medium", Name: "Medium", Description: "8 pairs in 120 seconds"},
	{Key: "hard", Name: "Hard", Description: "12 pairs in 150 seconds"},
}

var memoryLevels = map[string]memoryLevel{
	"easy":   {pairs: 6, timeBonus: 100, seconds: 90},
	"medium": {pairs: 8, timeBonus: 150, seconds: 120},
	"hard":   {pairs: 12, timeBonus: 200, seconds: 150},
}

var memoryIcons = []string{"💻", "⚙️", "🔧", "📦", "🚀", "💡", "🎯", "⭐", "🔥", "💎", "🎮", "🏆"}

// MemoryMatchPoints scores a matched pair: a base, a bonus per ten seconds
// left, and a bonus growing with the streak including this match.
func MemoryMatchPoints(timeLeft, timeBonus, streak int) int {
	return memoryMatchPoints + (timeLeft/10)*timeBonus + (streak+1)*memoryStreakPoints
}

type Card struct {
	Icon    string `json:"icon,omitempty"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

type MemoryView struct {
	Session Session `json:"session"`
	Cards   []Card  `json:"cards"`
	Moves   int     `json:"moves"`
	Score   int     `json:"score"`
	Tally   Tally   `json:"tally"`
	Won     bool    `json:"won"`
}

// memory is a pair-matching board. A mismatched pair stays face up until the
// next flip.
type memory struct {
	m *machine

	level   memoryLevel
	deck    []string
	matched []bool
	flipped []int
	moves   int
	score   int
	tally   Tally
	won     bool
}

func newMemory(sched scheduler.Scheduler, src rng.Source, o options) *memory {
	return &memory{m: newMachine(Memory, sched, src, o)}
}

func (g *memory) ID() ID { return Memory }

func (g *memory) Start(cfg Config) error {
	if _, err := findDifficulty(memoryDifficulties, cfg.Difficulty); err != nil {
		return err
	}
	g.m.lock()
	defer g.m.unlock()
	g.begin(Config{Difficulty: cfg.Difficulty})
	return nil
}

func (g *memory) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg)
	return nil
}

func (g *memory) begin(cfg Config) {
	g.level = memoryLevels[cfg.Difficulty]
	icons := memoryIcons[:g.level.pairs]
	g.deck = append(append([]string(nil), icons...), icons...)
	g.m.rand.Shuffle(len(g.deck), func(i, j int) { g.deck[i], g.deck[j] = g.deck[j], g.deck[i] })
	g.matched = make([]bool, len(g.deck))
	g.flipped = nil
	g.moves = 0
	g.score = 0
	g.tally = NewTally()
	g.won = false

	g.m.begin(cfg, StatusPlaying, g.level.seconds)
	g.m.startClock(g.tick)
}

// Input flips the card at in.Index.
func (g *memory) Input(in Input) Outcome {
	g.m.lock()
	defer g.m.unlock()
	if !g.m.playing() {
		return ignored("not playing")
	}
	i := in.Index
	if i < 0 || i >= len(g.deck) || g.matched[i] {
		return ignored("card unavailable")
	}
	if len(g.flipped) == 2 {
		g.flipped = nil
	}
	if len(g.flipped) == 1 && g.flipped[0] == i {
		return ignored("card already face up")
	}

	g.flipped = append(g.flipped, i)
	if len(g.flipped) < 2 {
		return Outcome{Accepted: true}
	}

	g.moves++
	a, b := g.flipped[0], g.flipped[1]
	if g.deck[a] != g.deck[b] {
		g.tally.Miss()
		return Outcome{Accepted: true, Message: "no match"}
	}

	points := MemoryMatchPoints(g.m.session.TimeRemainingSeconds, g.level.timeBonus, g.tally.Streak)
	g.matched[a], g.matched[b] = true, true
	g.flipped = nil
	g.score += points
	g.tally.Hit()

	if g.tally.Correct == g.level.pairs {
		g.won = true
		g.score += g.m.session.TimeRemainingSeconds * memoryWinBonus
		g.finish()
		return Outcome{Accepted: true, Correct: true, Points: points, Finished: true, Message: "all pairs found"}
	}
	return Outcome{Accepted: true, Correct: true, Points: points}
}

func (g *memory) Tick() {
	g.m.lock()
	defer g.m.unlock()
	if g.m.playing() {
		g.tick()
	}
}

func (g *memory) tick() {
	if g.m.countdown() {
		g.finish()
	}
}

func (g *memory) finish() {
	g.m.finish(Result{
		Score:     g.score,
		Accuracy:  Accuracy(g.tally.Correct, g.moves),
		Correct:   g.tally.Correct,
		Missed:    g.tally.Missed,
		MaxStreak: g.tally.MaxStreak,
		Won:       g.won,
		Record:    g.won,
	})
}

func (g *memory) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.m.reset()
}

func (g *memory) Session() Session { return g.m.snapshot() }

func (g *memory) Result() (Result, bool) { return g.m.lastResult() }

func (g *memory) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := MemoryView{
		Session: g.m.session,
		Cards:   make([]Card, len(g.deck)),
		Moves:   g.moves,
		Score:   g.score,
		Tally:   g.tally,
		Won:     g.won,
	}
	up := map[int]bool{}
	for _, i := range g.flipped {
		up[i] = true
	}
	for i, icon := range g.deck {
		c := Card{FaceUp: up[i] || g.matched[i], Matched: g.matched[i]}
		if c.FaceUp || g.m.session.Status == StatusFinished {
			c.Icon = icon
		}
		v.Cards[i] = c
	}
	return v
}
