package games

import (
	"sort"
	"time"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	WhackGridSize      = 9
	WhackSpecialChance = 0.1
	WhackBasePoints    = 1
	WhackSpecialPoints = 10
	survivalStep       = 50 * time.Millisecond
	survivalFloor      = 200 * time.Millisecond
	survivalEvery      = 10
	precisionSlowdown  = 1.5
)

// WhackTiming is how often bugs spawn and how long each stays up.
type WhackTiming struct {
	Spawn   time.Duration
	Display time.Duration
}

var whackDifficulties = []Difficulty{
	{Key: "easy", Name: "Easy", Description: "Slow bugs, long display time"},
	{Key: "medium", Name: "Medium", Description: "Moderate speed bugs"},
	{Key: "hard", Name: "Hard", Description: "Fast bugs, quick reflexes needed"},
	{Key: "insane", Name: "Insane", Description: "Lightning fast bugs!"},
}

var whackLevels = map[string]WhackTiming{
	"easy":   {Spawn: 1500 * time.Millisecond, Display: 2000 * time.Millisecond},
	"medium": {Spawn: 1000 * time.Millisecond, Display: 1500 * time.Millisecond},
	"hard":   {Spawn: 700 * time.Millisecond, Display: 1000 * time.Millisecond},
	"insane": {Spawn: 400 * time.Millisecond, Display: 600 * time.Millisecond},
}

var whackModes = []Mode{
	{Key: "classic", Name: "Classic", DurationSeconds: 60, Description: "Traditional whack-a-bug"},
	{Key: "survival", Name: "Survival", DurationSeconds: 90, Description: "Increasingly difficult bugs"},
	{Key: "precision", Name: "Precision", DurationSeconds: 45, Description: "Fewer bugs, higher accuracy needed"},
}

type bug struct {
	serial  int
	special bool
	timer   uint64
}

type ActiveBug struct {
	Slot    int  `json:"slot"`
	Special bool `json:"special"`
}

type WhackView struct {
	Session       Session     `json:"session"`
	Bugs          []ActiveBug `json:"bugs"`
	Score         int         `json:"score"`
	Tally         Tally       `json:"tally"`
	TotalBugs     int         `json:"totalBugs"`
	SpawnInterval int64       `json:"spawnIntervalMs"`
}

// whack spawns bugs into a grid on a repeating timer. A bug left alone for
// its display time escapes and counts as a miss.
type whack struct {
	m      *machine
	timing map[string]WhackTiming

	level    WhackTiming
	interval time.Duration
	active   map[int]bug
	total    int
	score    int
	tally    Tally
}

func newWhack(sched scheduler.Scheduler, src rng.Source, o options) *whack {
	return &whack{m: newMachine(Whack, sched, src, o), timing: o.whackTiming}
}

func (g *whack) ID() ID { return Whack }

func (g *whack) Start(cfg Config) error {
	if _, err := findDifficulty(whackDifficulties, cfg.Difficulty); err != nil {
		return err
	}
	if _, err := findMode(whackModes, cfg.Mode); err != nil {
		return err
	}
	g.m.lock()
	defer g.m.unlock()
	g.begin(cfg)
	return nil
}

func (g *whack) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg)
	return nil
}

func (g *whack) begin(cfg Config) {
	mode, _ := findMode(whackModes, cfg.Mode)
	g.level = whackLevels[cfg.Difficulty]
	if t, ok := g.timing[cfg.Difficulty]; ok && t.Spawn > 0 && t.Display > 0 {
		g.level = t
	}
	g.interval = g.level.Spawn
	if cfg.Mode == "precision" {
		g.interval = time.Duration(float64(g.interval) * precisionSlowdown)
	}
	g.active = map[int]bug{}
	g.total = 0
	g.score = 0
	g.tally = NewTally()

	g.m.begin(cfg, StatusPlaying, mode.DurationSeconds)
	g.m.startClock(g.tick)
	g.spawn()
}

func (g *whack) spawn() {
	var free []int
	for slot := 0; slot < WhackGridSize; slot++ {
		if _, taken := g.active[slot]; !taken {
			free = append(free, slot)
		}
	}
	if len(free) > 0 {
		slot := free[g.m.rand.Intn(len(free))]
		g.total++
		b := bug{serial: g.total, special: g.m.rand.Float64() < WhackSpecialChance}
		serial := b.serial
		b.timer = g.m.after(g.level.Display, func() { g.escape(slot, serial) })
		g.active[slot] = b

		// a full grid spawns nothing, so only a new bug can speed things up
		if g.m.cfg.Mode == "survival" && g.total%survivalEvery == 0 {
			g.interval -= survivalStep
			if g.interval < survivalFloor {
				g.interval = survivalFloor
			}
		}
	}
	g.m.after(g.interval, g.spawn)
}

func (g *whack) escape(slot, serial int) {
	b, ok := g.active[slot]
	if !ok || b.serial != serial {
		return
	}
	delete(g.active, slot)
	g.tally.Miss()
}

// Input whacks the slot in in.Index. Empty slots are ignored.
func (g *whack) Input(in Input) Outcome {
	g.m.lock()
	defer g.m.unlock()
	if !g.m.playing() {
		return ignored("not playing")
	}
	b, ok := g.active[in.Index]
	if !ok {
		return ignored("no bug there")
	}
	g.m.stop(b.timer)
	delete(g.active, in.Index)

	base := WhackBasePoints
	if b.special {
		base = WhackSpecialPoints
	}
	points := base * g.tally.Multiplier
	g.score += points
	g.tally.Hit()
	return Outcome{Accepted: true, Correct: true, Points: points}
}

func (g *whack) Tick() {
	g.m.lock()
	defer g.m.unlock()
	if g.m.playing() {
		g.tick()
	}
}

func (g *whack) tick() {
	if g.m.countdown() {
		g.finish()
	}
}

func (g *whack) finish() {
	g.active = map[int]bug{}
	g.m.finish(Result{
		Score:     g.score,
		Accuracy:  g.tally.Accuracy(),
		Correct:   g.tally.Correct,
		Missed:    g.tally.Missed,
		MaxStreak: g.tally.MaxStreak,
		Won:       g.score > 0,
		Record:    true,
	})
}

func (g *whack) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.active = map[int]bug{}
	g.m.reset()
}

func (g *whack) Session() Session { return g.m.snapshot() }

func (g *whack) Result() (Result, bool) { return g.m.lastResult() }

func (g *whack) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := WhackView{
		Session:       g.m.session,
		Bugs:          []ActiveBug{},
		Score:         g.score,
		Tally:         g.tally,
		TotalBugs:     g.total,
		SpawnInterval: g.interval.Milliseconds(),
	}
	for slot, b := range g.active {
		v.Bugs = append(v.Bugs, ActiveBug{Slot: slot, Special: b.special})
	}
	sort.Slice(v.Bugs, func(i, j int) bool { return v.Bugs[i].Slot < v.Bugs[j].Slot })
	return v
}
