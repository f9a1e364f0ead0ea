// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/db"
	"github.com/vytor/funzone/internal/models"
)

// NewTestDB opens a private in-memory database migrated the same way the
// server migrates its file database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	return conn.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// FinishedAt is the fixed finish time used by Result.
var FinishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// Result builds a finished run for visitor in game, scored under key.
func Result(session, visitor, game, key string, score int, won bool) models.GameResult {
	return models.GameResult{
		SessionID:  session,
		VisitorID:  visitor,
		GameID:     game,
		Difficulty: key,
		ScoreKey:   key,
		Score:      score,
		Accuracy:   80,
		Correct:    8,
		Missed:     2,
		MaxStreak:  score / 100,
		Won:        won,
		DurationMs: 60000,
		FinishedAt: FinishedAt,
	}
}
