package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/rng"
)

func startTyping(t *testing.T, mode, text string) *harness {
	t.Helper()
	h := newHarness(t, games.Typing, rng.NewScripted([]int{0}, nil),
		games.WithTexts(map[string][]string{"beginner": {text}}))
	require.NoError(t, h.engine.Start(games.Config{Difficulty: "beginner", Mode: mode}))
	require.Equal(t, games.StatusReady, h.engine.Session().Status)
	h.clock.Advance(100 * time.Millisecond)
	require.Equal(t, games.StatusPlaying, h.engine.Session().Status)
	return h
}

func TestTyping_CompletesText(t *testing.T) {
	h := startTyping(t, "time", "hello world")
	h.clock.Advance(6 * time.Second)

	out := h.engine.Input(games.Input{Text: "hello"})
	assert.True(t, out.Correct)
	assert.False(t, out.Finished)

	h.clock.Advance(6 * time.Second)
	out = h.engine.Input(games.Input{Text: "hello world"})
	require.True(t, out.Finished)

	res, ok := h.engine.Result()
	require.True(t, ok)
	// 11 chars / 5 over 12 seconds
	assert.Equal(t, 11, res.Score)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 11, res.MaxStreak)
	assert.True(t, res.Won)
	assert.True(t, res.Record)
	assert.Equal(t, "beginner-time", res.Key)
	assert.Equal(t, 12*time.Second, res.Duration)
}

func TestTyping_CountsErrors(t *testing.T) {
	h := startTyping(t, "accuracy", "abcdefghij")
	h.clock.Advance(3 * time.Second)

	out := h.engine.Input(games.Input{Text: "abXdeYgh"})
	assert.True(t, out.Accepted)
	assert.False(t, out.Correct)

	view := h.engine.View().(games.TypingView)
	assert.Equal(t, 2, view.Errors)
	assert.Equal(t, 75, view.Accuracy)
	assert.Equal(t, 2, view.Streak)
	assert.Equal(t, 2, view.MaxStreak)

	h.clock.Advance(120 * time.Second)
	res, ok := h.engine.Result()
	require.True(t, ok)
	assert.Equal(t, 75, res.Score, "accuracy mode scores accuracy")
	assert.False(t, res.Won)
	assert.Equal(t, 6, res.Correct)
	assert.Equal(t, 2, res.Missed)
	assert.Equal(t, "Keep practicing", h.engine.View().(games.TypingView).Rating)
}

func TestTyping_IgnoresOverlongInput(t *testing.T) {
	h := startTyping(t, "time", "abc")

	out := h.engine.Input(games.Input{Text: "abcd"})

	assert.False(t, out.Accepted)
	assert.Equal(t, games.StatusPlaying, h.engine.Session().Status)
}

func TestTyping_InputBeforePrerollIgnored(t *testing.T) {
	h := newHarness(t, games.Typing, rng.NewScripted([]int{0}, nil),
		games.WithTexts(map[string][]string{"beginner": {"abc"}}))
	require.NoError(t, h.engine.Start(games.Config{Difficulty: "beginner", Mode: "time"}))

	assert.False(t, h.engine.Input(games.Input{Text: "a"}).Accepted)
}

func TestTyping_NothingTypedIsNotRecorded(t *testing.T) {
	h := startTyping(t, "accuracy", "abc")
	h.clock.Advance(120 * time.Second)

	res, ok := h.engine.Result()
	require.True(t, ok)
	assert.False(t, res.Record)
	assert.Equal(t, 100, res.Accuracy)
}

func TestTyping_UnicodeRunes(t *testing.T) {
	h := startTyping(t, "time", "café")
	h.clock.Advance(time.Second)

	out := h.engine.Input(games.Input{Text: "café"})

	assert.True(t, out.Finished)
	res, _ := h.engine.Result()
	assert.Equal(t, 4, res.Correct)
}

func TestTypingRating(t *testing.T) {
	assert.Equal(t, "Lightning Fast", games.TypingRating("time", 85, 90))
	assert.Equal(t, "Average", games.TypingRating("endurance", 30, 100))
	assert.Equal(t, "Perfect", games.TypingRating("accuracy", 10, 99))
}
