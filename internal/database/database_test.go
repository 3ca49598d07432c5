package database_test

import (
	"testing"

	"github.com/larsmk/riftline/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDBRunsMigrations(t *testing.T) {
	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer db.Close()

	tables := []string{
		"summoners", "stats", "champion_mastery", "live_game",
		"matches", "participants", "teams", "team_bans", "team_objectives",
		"dashboard_matches", "metrics",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/riftline.db"

	db, err := database.InitDB(path, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an already-migrated database must not fail.
	db, err = database.InitDB(path, "", "")
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
