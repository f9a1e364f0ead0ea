// Package memory holds map-backed repositories for runs without a database
// and for tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

type scoreKey struct {
	visitor, game, key string
}

type ScoreRepository struct {
	mu     sync.RWMutex
	scores map[scoreKey]models.ScoreRecord
	now    func() time.Time
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{scores: map[scoreKey]models.ScoreRecord{}, now: time.Now}
}

var _ repository.ScoreRepository = (*ScoreRepository)(nil)

func (r *ScoreRepository) Get(_ context.Context, visitorID, gameID, key string) (*models.ScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.scores[scoreKey{visitorID, gameID, key}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *ScoreRepository) Write(_ context.Context, rec models.ScoreRecord, lowerIsBetter bool) (*models.ScoreRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := scoreKey{rec.VisitorID, rec.GameID, rec.Key}
	if cur, ok := r.scores[k]; ok {
		better := rec.Value > cur.Value
		if lowerIsBetter {
			better = rec.Value < cur.Value
		}
		if !better {
			return &cur, false, nil
		}
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = r.now().UTC()
	}
	r.scores[k] = rec
	return &rec, true, nil
}

func (r *ScoreRepository) List(_ context.Context, visitorID string) ([]models.ScoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ScoreRecord
	for k, rec := range r.scores {
		if k.visitor == visitorID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}
