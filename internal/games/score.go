package games

import (
	"math"
	"time"
)

// StreakMultiplier is the step function applied to a streak: 15+ scores
// four times, 10+ three times, 5+ twice.
func StreakMultiplier(streak int) int {
	switch {
	case streak >= 15:
		return 4
	case streak >= 10:
		return 3
	case streak >= 5:
		return 2
	default:
		return 1
	}
}

// Accuracy is correct/attempts as a rounded percentage; no attempts is 100.
func Accuracy(correct, attempts int) int {
	if attempts <= 0 {
		return 100
	}
	if correct < 0 {
		correct = 0
	}
	return int(math.Round(float64(correct) * 100 / float64(attempts)))
}

// Tally counts outcomes for the streak-based games.
type Tally struct {
	Correct    int `json:"correct"`
	Missed     int `json:"missed"`
	Streak     int `json:"streak"`
	MaxStreak  int `json:"maxStreak"`
	Multiplier int `json:"multiplier"`
}

func NewTally() Tally { return Tally{Multiplier: 1} }

func (t *Tally) Hit() {
	t.Correct++
	t.Streak++
	if t.Streak > t.MaxStreak {
		t.MaxStreak = t.Streak
	}
	t.Multiplier = StreakMultiplier(t.Streak)
}

func (t *Tally) Miss() {
	t.Missed++
	t.Streak = 0
	t.Multiplier = 1
}

func (t Tally) Attempts() int { return t.Correct + t.Missed }

func (t Tally) Accuracy() int { return Accuracy(t.Correct, t.Attempts()) }

// WPM is net words per minute: correct characters over five, per minute.
func WPM(correctChars int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 || correctChars <= 0 {
		return 0
	}
	return int(math.Round(float64(correctChars) / 5 / minutes))
}
