package repository

import (
	"context"

	"github.com/vytor/funzone/internal/models"
)

// ScoreRepository handles best score data access
type ScoreRepository interface {
	// Get returns ErrNotFound when the visitor has no score for the key.
	Get(ctx context.Context, visitorID, gameID, key string) (*models.ScoreRecord, error)
	// Write stores rec.Value if it beats the stored value (lower wins when
	// lowerIsBetter) and returns the record now held plus whether it changed.
	Write(ctx context.Context, rec models.ScoreRecord, lowerIsBetter bool) (*models.ScoreRecord, bool, error)
	List(ctx context.Context, visitorID string) ([]models.ScoreRecord, error)
}
