package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/singhit/internal/storage/sqlite"
	"github.com/mcoot/singhit/internal/storage/sqlite/migrations"
)

func TestMigrations(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Run(db))

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "snapshots",
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "snapshots", name)
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Run(db), "first run")
	require.NoError(t, migrations.Run(db), "second run should be a no-op")
}
