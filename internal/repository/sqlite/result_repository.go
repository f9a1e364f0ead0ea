package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

type resultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository implementation
func NewResultRepository(db *sql.DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

// Insert stores a finished run. A session is recorded once; inserting the
// same session again returns the existing id.
func (r *resultRepository) Insert(ctx context.Context, g models.GameResult) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("inserting result: session=%s, game=%s, score=%d", g.SessionID, g.GameID, g.Score)

	query, args, err := sqlBuilder.
		Insert("game_results").
		Columns("session_id", "visitor_id", "game_id", "difficulty", "mode", "score_key",
			"score", "accuracy", "correct", "missed", "max_streak", "won", "duration_ms", "finished_at").
		Values(g.SessionID, g.VisitorID, g.GameID, g.Difficulty, g.Mode, g.ScoreKey,
			g.Score, g.Accuracy, g.Correct, g.Missed, g.MaxStreak, boolInt(g.Won), g.DurationMs, g.FinishedAt).
		Suffix("ON CONFLICT(session_id) DO NOTHING").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert result: %v", err)
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		id, err := res.LastInsertId()
		if err == nil {
			log.Debug("result inserted: id=%d", id)
		}
		return id, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM game_results WHERE session_id = ?`, g.SessionID).Scan(&id)
	if err != nil {
		log.Error("failed to get result id: %v", err)
	} else {
		log.Debug("result exists: id=%d", id)
	}
	return id, err
}

func (r *resultRepository) List(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("listing results: game=%s", filter.GameID)

	query := sqlBuilder.Select(
		"id", "session_id", "visitor_id", "game_id", "difficulty", "mode", "score_key",
		"score", "accuracy", "correct", "missed", "max_streak", "won", "duration_ms", "finished_at", "created_at",
	).From("game_results")

	if filter.VisitorID != "" {
		query = query.Where(squirrel.Eq{"visitor_id": filter.VisitorID})
	}
	if filter.GameID != "" {
		query = query.Where(squirrel.Eq{"game_id": filter.GameID})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.OrderBy("finished_at DESC", "id DESC").Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		var g models.GameResult
		if err := rows.Scan(&g.ID, &g.SessionID, &g.VisitorID, &g.GameID, &g.Difficulty, &g.Mode, &g.ScoreKey,
			&g.Score, &g.Accuracy, &g.Correct, &g.Missed, &g.MaxStreak, &g.Won, &g.DurationMs, &g.FinishedAt, &g.CreatedAt); err != nil {
			log.Error("failed to scan result row: %v", err)
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

func (r *resultRepository) GameStats(ctx context.Context, visitorID string) ([]models.GameStat, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("computing game stats")

	query, args, err := sqlBuilder.Select(
		"game_id",
		"COUNT(*)",
		"COALESCE(SUM(won), 0)",
		"COALESCE(AVG(score), 0)",
		"COALESCE(AVG(accuracy), 0)",
		"COALESCE(MAX(max_streak), 0)",
		"COALESCE(SUM(duration_ms), 0)",
	).
		From("game_results").
		Where(squirrel.Eq{"visitor_id": visitorID}).
		GroupBy("game_id").
		OrderBy("game_id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query game stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.GameStat
	for rows.Next() {
		var s models.GameStat
		if err := rows.Scan(&s.GameID, &s.Plays, &s.Wins, &s.AvgScore, &s.AvgAccuracy, &s.BestStreak, &s.TotalDurationMs); err != nil {
			log.Error("failed to scan game stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *resultRepository) KeyStats(ctx context.Context, visitorID string) ([]models.KeyStat, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("computing key stats")

	query, args, err := sqlBuilder.Select("game_id", "score_key", "COUNT(*)", "COALESCE(AVG(score), 0)").
		From("game_results").
		Where(squirrel.Eq{"visitor_id": visitorID}).
		GroupBy("game_id", "score_key").
		OrderBy("game_id ASC", "score_key ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query key stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.KeyStat
	for rows.Next() {
		var s models.KeyStat
		if err := rows.Scan(&s.GameID, &s.ScoreKey, &s.Plays, &s.AvgScore); err != nil {
			log.Error("failed to scan key stat row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
