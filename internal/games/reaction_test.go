package games_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/rng"
)

func TestReaction_MeasuresFromSignal(t *testing.T) {
	// Intn returning 0 gives the minimum delay.
	h := newHarness(t, games.Reaction, rng.NewScripted([]int{0}, nil))
	require.NoError(t, h.engine.Start(games.Config{}))
	assert.Equal(t, games.StatusReady, h.engine.Session().Status)

	h.clock.Advance(games.ReactionMinDelay - time.Millisecond)
	assert.Equal(t, games.StatusReady, h.engine.Session().Status)
	h.clock.Advance(time.Millisecond)
	require.Equal(t, games.StatusPlaying, h.engine.Session().Status)

	h.clock.Advance(230 * time.Millisecond)
	out := h.engine.Input(games.Input{})

	assert.True(t, out.Accepted)
	assert.True(t, out.Finished)
	assert.Equal(t, "Excellent", out.Message)

	res, ok := h.engine.Result()
	require.True(t, ok)
	assert.Equal(t, 230, res.Score)
	assert.True(t, res.LowerIsBetter)
	assert.True(t, res.Record)
	assert.Equal(t, "best", res.Key)
	assert.Equal(t, 230*time.Millisecond, res.Duration)
	require.Len(t, h.finished, 1)
	assert.Equal(t, res, h.finished[0])

	view := h.engine.View().(games.ReactionView)
	assert.Equal(t, int64(230), view.ReactionMs)
	assert.Equal(t, []int64{230}, view.History)
}

func TestReaction_DelayWithinBounds(t *testing.T) {
	h := newHarness(t, games.Reaction, rng.NewScripted([]int{4000}, nil))
	require.NoError(t, h.engine.Start(games.Config{}))

	h.clock.Advance(games.ReactionMaxDelay - time.Millisecond)
	assert.Equal(t, games.StatusReady, h.engine.Session().Status)
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, games.StatusPlaying, h.engine.Session().Status)
}

func TestReaction_FalseStart(t *testing.T) {
	h := newHarness(t, games.Reaction, rng.NewScripted([]int{0}, nil))
	require.NoError(t, h.engine.Start(games.Config{}))
	h.clock.Advance(500 * time.Millisecond)

	out := h.engine.Input(games.Input{})

	assert.True(t, out.Accepted)
	assert.False(t, out.Finished)
	assert.Equal(t, games.StatusMenu, h.engine.Session().Status)
	assert.True(t, h.engine.View().(games.ReactionView).FalseStart)
	assert.Empty(t, h.finished)

	// the pending signal must not fire into the menu
	h.clock.Advance(10 * time.Second)
	assert.Equal(t, games.StatusMenu, h.engine.Session().Status)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestReaction_WindowExpires(t *testing.T) {
	h := newHarness(t, games.Reaction, rng.NewScripted([]int{0}, nil), games.WithReactionWindow(2))
	require.NoError(t, h.engine.Start(games.Config{}))
	h.clock.Advance(games.ReactionMinDelay)

	h.clock.Advance(2 * time.Second)

	require.Equal(t, games.StatusFinished, h.engine.Session().Status)
	res, _ := h.engine.Result()
	assert.False(t, res.Record)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 0, res.Score)
}

func TestReaction_HistoryAverage(t *testing.T) {
	h := newHarness(t, games.Reaction, rng.NewScripted([]int{0}, nil))
	for _, ms := range []int{200, 300, 250} {
		if h.engine.Session().Status == games.StatusFinished {
			require.NoError(t, h.engine.Retry())
		} else {
			require.NoError(t, h.engine.Start(games.Config{}))
		}
		h.clock.Advance(games.ReactionMinDelay + time.Duration(ms)*time.Millisecond)
		h.engine.Input(games.Input{})
	}

	view := h.engine.View().(games.ReactionView)
	assert.Equal(t, 3, view.Attempts)
	assert.Equal(t, int64(250), view.AverageMs)
	assert.Equal(t, "Good", view.Rating)
}

func TestReactionRating(t *testing.T) {
	assert.Equal(t, "Lightning Fast", games.ReactionRating(150))
	assert.Equal(t, "Average", games.ReactionRating(399))
	assert.Equal(t, "Need Practice", games.ReactionRating(400))
}
