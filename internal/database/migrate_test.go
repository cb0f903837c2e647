package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/userdata"
)

func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	opts := database.Options{
		Driver:       database.DriverSQLite,
		URL:          filepath.Join(t.TempDir(), "studyhub.db"),
		MaxOpenConns: 1,
		Attempts:     1,
	}

	require.NoError(t, database.Migrate(opts))
	// a second run is a no-op
	require.NoError(t, database.Migrate(opts))

	version, dirty, err := database.MigrationVersion(opts)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	db, err := database.Connect(ctx, opts)
	require.NoError(t, err)

	store := userdata.NewSQLStore(db)
	require.NoError(t, store.Put(ctx, "u1", userdata.KeyBookmarks, []byte(`["a"]`)))
	require.NoError(t, store.Put(ctx, "u1", userdata.KeyBookmarks, []byte(`["a","b"]`)))

	got, err := store.Get(ctx, "u1", userdata.KeyBookmarks)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(got))

	_, err = store.Get(ctx, "u2", userdata.KeyBookmarks)
	assert.ErrorIs(t, err, userdata.ErrNoData)
	require.NoError(t, db.Close())

	require.NoError(t, database.MigrateDown(opts, 0))
	version, _, err = database.MigrationVersion(opts)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}
