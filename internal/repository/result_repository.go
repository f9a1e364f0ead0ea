package repository

import (
	"context"

	"github.com/vytor/funzone/internal/models"
)

// ResultRepository handles finished game runs
type ResultRepository interface {
	Insert(ctx context.Context, result models.GameResult) (int64, error)
	List(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error)
	GameStats(ctx context.Context, visitorID string) ([]models.GameStat, error)
	KeyStats(ctx context.Context, visitorID string) ([]models.KeyStat, error)
}
