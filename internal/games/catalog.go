package games

import (
	"fmt"

	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

type Difficulty struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Mode struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"durationSeconds"`
	Description     string `json:"description,omitempty"`
}

// Descriptor is the menu entry of one game.
type Descriptor struct {
	ID            ID           `json:"id"`
	Name          string       `json:"name"`
	Unit          string       `json:"unit"`
	LowerIsBetter bool         `json:"lowerIsBetter"`
	Difficulties  []Difficulty `json:"difficulties,omitempty"`
	Modes         []Mode       `json:"modes,omitempty"`
}

// Keys lists every best-score key the game can produce.
func (d Descriptor) Keys() []string {
	if len(d.Difficulties) == 0 {
		return []string{ScoreKey(d.ID, Config{})}
	}
	var keys []string
	for _, diff := range d.Difficulties {
		if len(d.Modes) == 0 {
			keys = append(keys, ScoreKey(d.ID, Config{Difficulty: diff.Key}))
			continue
		}
		for _, mode := range d.Modes {
			keys = append(keys, ScoreKey(d.ID, Config{Difficulty: diff.Key, Mode: mode.Key}))
		}
	}
	return keys
}

// ScoreKey is the best-score key for a configuration: the difficulty, joined
// with the mode for games that have modes. Reaction has a single key.
func ScoreKey(id ID, cfg Config) string {
	switch id {
	case Reaction:
		return "best"
	case Typing, Whack:
		return cfg.Difficulty + "-" + cfg.Mode
	default:
		return cfg.Difficulty
	}
}

func Catalog() []Descriptor {
	return []Descriptor{
		{ID: Reaction, Name: "Reaction Time", Unit: "ms", LowerIsBetter: true},
		{ID: Typing, Name: "Typing Speed", Unit: "wpm", Difficulties: typingDifficulties, Modes: typingModes},
		{ID: Quiz, Name: "Code Quiz", Unit: "points", Difficulties: quizDifficulties},
		{ID: Whack, Name: "Whack-a-Bug", Unit: "points", Difficulties: whackDifficulties, Modes: whackModes},
		{ID: Memory, Name: "Memory Match", Unit: "points", Difficulties: memoryDifficulties},
		{ID: Mood, Name: "Dev Mood Generator", Unit: "energy", Difficulties: moodDifficulties},
	}
}

func Describe(id ID) (Descriptor, bool) {
	for _, d := range Catalog() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// New builds the engine for id.
func New(id ID, sched scheduler.Scheduler, src rng.Source, opts ...Option) (Engine, error) {
	o := buildOptions(opts)
	switch id {
	case Reaction:
		return newReaction(sched, src, o), nil
	case Typing:
		return newTyping(sched, src, o), nil
	case Quiz:
		return newQuiz(sched, src, o), nil
	case Whack:
		return newWhack(sched, src, o), nil
	case Memory:
		return newMemory(sched, src, o), nil
	case Mood:
		return newMood(sched, src, o), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
}

func findDifficulty(list []Difficulty, key string) (Difficulty, error) {
	for _, d := range list {
		if d.Key == key {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, key)
}

func findMode(list []Mode, key string) (Mode, error) {
	for _, m := range list {
		if m.Key == key {
			return m, nil
		}
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, key)
}
