package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

type scoreRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db *sql.DB) repository.ScoreRepository {
	return &scoreRepository{db: db, now: time.Now}
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getScore(ctx context.Context, q rowQuerier, visitorID, gameID, key string) (*models.ScoreRecord, error) {
	query, args, err := sqlBuilder.
		Select("visitor_id", "game_id", "score_key", "value", "updated_at").
		From("best_scores").
		Where(squirrel.Eq{"visitor_id": visitorID, "game_id": gameID, "score_key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rec models.ScoreRecord
	err = q.QueryRowContext(ctx, query, args...).Scan(&rec.VisitorID, &rec.GameID, &rec.Key, &rec.Value, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *scoreRepository) Get(ctx context.Context, visitorID, gameID, key string) (*models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("getting best score: game=%s, key=%s", gameID, key)

	rec, err := getScore(ctx, r.db, visitorID, gameID, key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to get best score: %v", err)
	}
	return rec, err
}

func (r *scoreRepository) Write(ctx context.Context, rec models.ScoreRecord, lowerIsBetter bool) (*models.ScoreRecord, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("writing best score candidate: game=%s, key=%s, value=%d", rec.GameID, rec.Key, rec.Value)

	cmp := ">"
	if lowerIsBetter {
		cmp = "<"
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = r.now().UTC()
	}

	query, args, err := sqlBuilder.
		Insert("best_scores").
		Columns("visitor_id", "game_id", "score_key", "value", "updated_at").
		Values(rec.VisitorID, rec.GameID, rec.Key, rec.Value, rec.UpdatedAt).
		Suffix(`ON CONFLICT(visitor_id, game_id, score_key) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
WHERE excluded.value ` + cmp + ` best_scores.value`).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, false, err
	}

	var (
		stored  *models.ScoreRecord
		changed bool
	)
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		changed = n > 0
		stored, err = getScore(ctx, tx, rec.VisitorID, rec.GameID, rec.Key)
		return err
	})
	if err != nil {
		log.Error("failed to write best score: %v", err)
		return nil, false, err
	}
	if changed {
		log.Debug("new best score: game=%s, key=%s, value=%d", rec.GameID, rec.Key, stored.Value)
	}
	return stored, changed, nil
}

func (r *scoreRepository) List(ctx context.Context, visitorID string) ([]models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("listing best scores")

	query, args, err := sqlBuilder.
		Select("visitor_id", "game_id", "score_key", "value", "updated_at").
		From("best_scores").
		Where(squirrel.Eq{"visitor_id": visitorID}).
		OrderBy("game_id ASC", "score_key ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list best scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var rec models.ScoreRecord
		if err := rows.Scan(&rec.VisitorID, &rec.GameID, &rec.Key, &rec.Value, &rec.UpdatedAt); err != nil {
			log.Error("failed to scan best score row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debug("found %d best scores", len(records))
	return records, rows.Err()
}
