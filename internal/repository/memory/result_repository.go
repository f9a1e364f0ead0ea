package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

type ResultRepository struct {
	mu      sync.RWMutex
	results []models.GameResult
	ids     map[string]int64
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{ids: map[string]int64{}}
}

var _ repository.ResultRepository = (*ResultRepository)(nil)

func (r *ResultRepository) Insert(_ context.Context, g models.GameResult) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[g.SessionID]; ok {
		return id, nil
	}
	g.ID = int64(len(r.results) + 1)
	if g.CreatedAt.IsZero() {
		g.CreatedAt = g.FinishedAt
	}
	r.results = append(r.results, g)
	r.ids[g.SessionID] = g.ID
	return g.ID, nil
}

func (r *ResultRepository) List(_ context.Context, filter models.ResultFilter) ([]models.GameResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.GameResult
	for _, g := range r.results {
		if filter.VisitorID != "" && g.VisitorID != filter.VisitorID {
			continue
		}
		if filter.GameID != "" && g.GameID != filter.GameID {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].FinishedAt.After(out[j].FinishedAt)
		}
		return out[i].ID > out[j].ID
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ResultRepository) GameStats(_ context.Context, visitorID string) ([]models.GameStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byGame := map[string]*models.GameStat{}
	sums := map[string][2]int{}
	for _, g := range r.results {
		if g.VisitorID != visitorID {
			continue
		}
		s, ok := byGame[g.GameID]
		if !ok {
			s = &models.GameStat{GameID: g.GameID}
			byGame[g.GameID] = s
		}
		s.Plays++
		if g.Won {
			s.Wins++
		}
		if g.MaxStreak > s.BestStreak {
			s.BestStreak = g.MaxStreak
		}
		s.TotalDurationMs += g.DurationMs
		acc := sums[g.GameID]
		acc[0] += g.Score
		acc[1] += g.Accuracy
		sums[g.GameID] = acc
	}

	out := make([]models.GameStat, 0, len(byGame))
	for id, s := range byGame {
		s.AvgScore = float64(sums[id][0]) / float64(s.Plays)
		s.AvgAccuracy = float64(sums[id][1]) / float64(s.Plays)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out, nil
}

func (r *ResultRepository) KeyStats(_ context.Context, visitorID string) ([]models.KeyStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	type gk struct{ game, key string }
	plays := map[gk]int{}
	totals := map[gk]int{}
	for _, g := range r.results {
		if g.VisitorID != visitorID {
			continue
		}
		k := gk{g.GameID, g.ScoreKey}
		plays[k]++
		totals[k] += g.Score
	}

	out := make([]models.KeyStat, 0, len(plays))
	for k, n := range plays {
		out = append(out, models.KeyStat{GameID: k.game, ScoreKey: k.key, Plays: n, AvgScore: float64(totals[k]) / float64(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].ScoreKey < out[j].ScoreKey
	})
	return out, nil
}
