package games

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	MoodGenerateDelay  = 1500 * time.Millisecond
	MoodRandomCategory = "random"
	moodHistorySize    = 10
	moodTopPicks       = 3
	moodWeightJitter   = 20
	moodTraitGain      = 10
	moodTraitStart     = 50
	moodTraitMax       = 100
)

var moodDifficulties = func() []Difficulty {
	list := []Difficulty{{Key: MoodRandomCategory, Name: "Surprise Me!", Description: "Any category"}}
	for _, c := range moodCategories {
		list = append(list, Difficulty{Key: c.key, Name: c.name, Description: fmt.Sprintf("%d moods", len(c.moods))})
	}
	return list
}()

// GeneratedMood is a mood handed out at a particular time.
type GeneratedMood struct {
	MoodProfile
	Category    string    `json:"category"`
	TimeOfDay   TimeOfDay `json:"timeOfDay"`
	TimeBonus   string    `json:"timeBonus"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type MoodView struct {
	Session     Session         `json:"session"`
	Current     *GeneratedMood  `json:"current,omitempty"`
	Insights    []string        `json:"insights,omitempty"`
	Compatible  []string        `json:"compatibleWith,omitempty"`
	History     []GeneratedMood `json:"history"`
	TotalMoods  int             `json:"totalMoods"`
	DailyStreak int             `json:"dailyStreak"`
	Personality map[string]int  `json:"personality"`
	AIScore     int             `json:"aiScore"`
	TimeOfDay   TimeOfDay       `json:"timeOfDay"`
}

// mood "thinks" for a moment in ready, then picks a mood from the chosen
// category, favouring high energy in the morning and low energy at night.
// History, personality traits and the daily streak outlive single runs.
type mood struct {
	m *machine

	current     *GeneratedMood
	history     []GeneratedMood
	total       int
	personality map[string]float64
	streak      int
	lastDay     time.Time
}

func newMood(sched scheduler.Scheduler, src rng.Source, o options) *mood {
	traits := make(map[string]float64, len(moodCategories))
	for _, c := range moodCategories {
		traits[c.key] = moodTraitStart
	}
	return &mood{m: newMachine(Mood, sched, src, o), personality: traits}
}

func (g *mood) ID() ID { return Mood }

func (g *mood) Start(cfg Config) error {
	if cfg.Difficulty == "" {
		cfg.Difficulty = MoodRandomCategory
	}
	if _, err := findDifficulty(moodDifficulties, cfg.Difficulty); err != nil {
		return err
	}
	g.m.lock()
	defer g.m.unlock()
	g.begin(Config{Difficulty: cfg.Difficulty})
	return nil
}

func (g *mood) Retry() error {
	g.m.lock()
	defer g.m.unlock()
	if err := g.m.canRetry(); err != nil {
		return err
	}
	g.begin(g.m.cfg)
	return nil
}

func (g *mood) begin(cfg Config) {
	g.m.begin(cfg, StatusReady, 0)
	g.current = nil
	g.m.after(MoodGenerateDelay, g.generate)
}

func (g *mood) generate() {
	if !g.m.to(StatusPlaying) {
		return
	}
	now := g.m.sched.Now()
	cat := g.category()
	tod := TimeOfDayAt(now.Hour())
	mod := timeModifiers[tod]

	type weighted struct {
		profile MoodProfile
		weight  float64
	}
	pool := make([]weighted, len(cat.moods))
	for i, p := range cat.moods {
		pool[i] = weighted{profile: p, weight: float64(p.Energy)*mod.multiplier + g.m.rand.Float64()*moodWeightJitter}
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].weight > pool[j].weight })
	top := pool[:min(moodTopPicks, len(pool))]
	picked := top[g.m.rand.Intn(len(top))].profile

	gm := GeneratedMood{
		MoodProfile: picked,
		Category:    cat.key,
		TimeOfDay:   tod,
		TimeBonus:   mod.bonus,
		GeneratedAt: now,
	}
	g.current = &gm
	g.history = append([]GeneratedMood{gm}, g.history...)
	if len(g.history) > moodHistorySize {
		g.history = g.history[:moodHistorySize]
	}
	g.total++
	g.personality[cat.key] = math.Min(moodTraitMax, g.personality[cat.key]+g.m.rand.Float64()*moodTraitGain)
	g.bumpStreak(now)

	g.m.finish(Result{Score: picked.Energy, Accuracy: 100, Won: true})
}

func (g *mood) category() moodCategory {
	key := g.m.cfg.Difficulty
	if key == MoodRandomCategory {
		return moodCategories[g.m.rand.Intn(len(moodCategories))]
	}
	for _, c := range moodCategories {
		if c.key == key {
			return c
		}
	}
	return moodCategories[0]
}

// bumpStreak counts consecutive calendar days with at least one mood.
func (g *mood) bumpStreak(now time.Time) {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch {
	case g.lastDay.IsZero():
		g.streak = 1
	case day.Equal(g.lastDay):
	case day.Equal(g.lastDay.AddDate(0, 0, 1)):
		g.streak++
	default:
		g.streak = 1
	}
	g.lastDay = day
}

// Input is ignored: a mood is requested with Start or Retry.
func (g *mood) Input(Input) Outcome {
	return ignored("nothing to input")
}

// Tick does nothing; generation runs on its own timer.
func (g *mood) Tick() {}

// Reset returns to the menu. History, traits and streak are kept.
func (g *mood) Reset() {
	g.m.lock()
	defer g.m.unlock()
	g.m.reset()
	g.current = nil
}

func (g *mood) Session() Session { return g.m.snapshot() }

func (g *mood) Result() (Result, bool) { return g.m.lastResult() }

func (g *mood) View() any {
	g.m.lock()
	defer g.m.unlock()
	v := MoodView{
		Session:     g.m.session,
		History:     append([]GeneratedMood{}, g.history...),
		TotalMoods:  g.total,
		DailyStreak: g.streak,
		Personality: make(map[string]int, len(g.personality)),
		TimeOfDay:   TimeOfDayAt(g.m.sched.Now().Hour()),
	}
	var sum float64
	for k, p := range g.personality {
		v.Personality[k] = int(math.Round(p))
		sum += p
	}
	v.AIScore = int(math.Round(sum / float64(len(g.personality))))
	if g.current != nil {
		cur := *g.current
		v.Current = &cur
		v.Insights = moodInsights(cur)
		v.Compatible = moodCompatibility[cur.Label]
		if v.Compatible == nil {
			v.Compatible = defaultCompatibility
		}
	}
	return v
}

func moodInsights(gm GeneratedMood) []string {
	insights := []string{
		fmt.Sprintf("Your %s level is at %d%%", gm.Category, gm.Energy),
	}
	if len(gm.Tips) > 0 {
		insights = append(insights, "This mood is perfect for "+strings.ToLower(gm.Tips[0]))
	}
	return append(insights,
		"Time context: "+gm.TimeBonus,
		"Productivity prediction: "+Productivity(gm.Energy),
	)
}
