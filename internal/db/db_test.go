package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/db"
	"github.com/vytor/funzone/internal/testutil"
)

func TestMigrations_Sorted(t *testing.T) {
	names, err := db.Migrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_result_indexes.sql"}, names)
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "funzone.db")

	conn, err := db.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, conn.Ready(ctx))

	for _, table := range []string{"best_scores", "game_results"} {
		var name string
		err := conn.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
	testutil.MustClose(t, conn)

	// reopening must not re-run anything
	conn, err = db.Open(ctx, path)
	require.NoError(t, err)
	defer testutil.MustClose(t, conn)

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}
