package services

import (
	"context"

	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetVisitorStats(ctx context.Context, visitorID string) (*models.VisitorStats, error)
	GetLeaderboard(ctx context.Context, visitorID string) ([]models.LeaderboardEntry, error)
	ListResults(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error)
}

type statsService struct {
	results repository.ResultRepository
	scores  repository.ScoreRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(results repository.ResultRepository, scores repository.ScoreRepository) StatsService {
	return &statsService{results: results, scores: scores}
}

func (s *statsService) GetVisitorStats(ctx context.Context, visitorID string) (*models.VisitorStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting visitor stats")

	gameStats, err := s.results.GameStats(ctx, visitorID)
	if err != nil {
		log.Error("failed to get game stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	keyStats, err := s.results.KeyStats(ctx, visitorID)
	if err != nil {
		log.Error("failed to get key stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := &models.VisitorStats{
		VisitorID: visitorID,
		Games:     gameStats,
		Keys:      keyStats,
	}
	if stats.Games == nil {
		stats.Games = []models.GameStat{}
	}
	if stats.Keys == nil {
		stats.Keys = []models.KeyStat{}
	}
	for _, g := range gameStats {
		stats.TotalPlays += g.Plays
		stats.TotalDurationMs += g.TotalDurationMs
	}
	return stats, nil
}

// GetLeaderboard lists the visitor's best scores in catalogue order. A store
// failure yields an empty board.
func (s *statsService) GetLeaderboard(ctx context.Context, visitorID string) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting leaderboard")

	records, err := s.scores.List(ctx, visitorID)
	if err != nil {
		log.Warn("failed to list best scores, returning empty leaderboard: %v", err)
		return []models.LeaderboardEntry{}, nil
	}

	byGame := make(map[string][]models.ScoreRecord)
	for _, rec := range records {
		byGame[rec.GameID] = append(byGame[rec.GameID], rec)
	}

	entries := []models.LeaderboardEntry{}
	for _, d := range games.Catalog() {
		for _, rec := range byGame[string(d.ID)] {
			entries = append(entries, models.LeaderboardEntry{
				ScoreRecord:   rec,
				GameName:      d.Name,
				Unit:          d.Unit,
				LowerIsBetter: d.LowerIsBetter,
			})
		}
	}
	return entries, nil
}

func (s *statsService) ListResults(ctx context.Context, filter models.ResultFilter) ([]models.GameResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing results: game=%s, limit=%d, offset=%d", filter.GameID, filter.Limit, filter.Offset)

	if filter.GameID != "" {
		if _, ok := games.Describe(games.ID(filter.GameID)); !ok {
			return nil, errors.NewValidationError("game", "unknown game")
		}
	}

	results, err := s.results.List(ctx, filter)
	if err != nil {
		log.Error("failed to list results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if results == nil {
		results = []models.GameResult{}
	}
	return results, nil
}
