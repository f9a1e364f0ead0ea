package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/rng"
)

// With a scripted source the deck is left unshuffled, so card i pairs with
// card i+pairs.
func startMemory(t *testing.T, difficulty string) *harness {
	t.Helper()
	h := newHarness(t, games.Memory, rng.NewScripted(nil, nil))
	require.NoError(t, h.engine.Start(games.Config{Difficulty: difficulty}))
	return h
}

func flip(h *harness, i int) games.Outcome {
	return h.engine.Input(games.Input{Index: i})
}

func TestMemory_MatchScoring(t *testing.T) {
	h := startMemory(t, "easy")

	require.True(t, flip(h, 0).Accepted)
	out := flip(h, 6)

	assert.True(t, out.Correct)
	assert.Equal(t, games.MemoryMatchPoints(90, 100, 0), out.Points)

	h.clock.Advance(11 * time.Second)
	flip(h, 1)
	out = flip(h, 7)
	assert.Equal(t, games.MemoryMatchPoints(79, 100, 1), out.Points)

	v := h.engine.View().(games.MemoryView)
	assert.Equal(t, 2, v.Moves)
	assert.True(t, v.Cards[0].Matched)
	assert.Equal(t, v.Cards[0].Icon, v.Cards[6].Icon)
	assert.Empty(t, v.Cards[2].Icon, "face down cards hide their icon")
}

func TestMemory_Mismatch(t *testing.T) {
	h := startMemory(t, "easy")

	flip(h, 0)
	out := flip(h, 1)
	assert.True(t, out.Accepted)
	assert.False(t, out.Correct)

	v := h.engine.View().(games.MemoryView)
	assert.True(t, v.Cards[0].FaceUp)
	assert.True(t, v.Cards[1].FaceUp)
	assert.Equal(t, 1, v.Tally.Missed)

	// the next flip turns the mismatched pair back over
	flip(h, 2)
	v = h.engine.View().(games.MemoryView)
	assert.False(t, v.Cards[0].FaceUp)
	assert.False(t, v.Cards[1].FaceUp)
	assert.True(t, v.Cards[2].FaceUp)
}

func TestMemory_IgnoredFlips(t *testing.T) {
	h := startMemory(t, "easy")

	assert.False(t, flip(h, -1).Accepted)
	assert.False(t, flip(h, 12).Accepted)

	flip(h, 0)
	assert.False(t, flip(h, 0).Accepted, "same card twice")
	flip(h, 6)
	assert.False(t, flip(h, 6).Accepted, "matched card")
	assert.Equal(t, 1, h.engine.View().(games.MemoryView).Moves)
}

func TestMemory_Win(t *testing.T) {
	h := startMemory(t, "easy")
	h.clock.Advance(30 * time.Second)

	var total int
	var out games.Outcome
	for i := 0; i < 6; i++ {
		flip(h, i)
		out = flip(h, i+6)
		total += out.Points
	}

	require.True(t, out.Finished)
	res, ok := h.engine.Result()
	require.True(t, ok)
	assert.True(t, res.Won)
	assert.True(t, res.Record)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 6, res.MaxStreak)
	assert.Equal(t, total+60*10, res.Score)
	assert.Equal(t, "easy", res.Key)

	v := h.engine.View().(games.MemoryView)
	assert.True(t, v.Won)
}

func TestMemory_Timeout(t *testing.T) {
	h := startMemory(t, "medium")
	flip(h, 0)
	flip(h, 1)
	flip(h, 0)
	flip(h, 8)

	h.clock.Advance(120 * time.Second)

	res, ok := h.engine.Result()
	require.True(t, ok)
	assert.False(t, res.Won)
	assert.False(t, res.Record)
	assert.Equal(t, 50, res.Accuracy)
	assert.Equal(t, 1, res.Correct)

	v := h.engine.View().(games.MemoryView)
	for _, c := range v.Cards {
		assert.NotEmpty(t, c.Icon, "board is revealed when finished")
	}
}

func TestMemory_HardBoard(t *testing.T) {
	h := newHarness(t, games.Memory, rng.New(42))
	require.NoError(t, h.engine.Start(games.Config{Difficulty: "hard"}))

	v := h.engine.View().(games.MemoryView)
	assert.Len(t, v.Cards, 24)
	assert.Equal(t, 150, v.Session.TimeRemainingSeconds)
}
