package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-service/internal/repository/postgres"
	"github.com/map-service/internal/repository/postgres/testhelpers"
)

func TestOptionRepository(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()

	ctx := context.Background()
	db := postgres.NewDBForTest(tdb.DB, tdb.Logger)
	require.NoError(t, postgres.Migrate(ctx, db))
	tdb.Cleanup(ctx, "map_options")
	defer tdb.Cleanup(ctx, "map_options")

	repo := postgres.NewOptionRepository(db)

	t.Run("empty names", func(t *testing.T) {
		opts, err := repo.GetOptions(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("set, overwrite and read", func(t *testing.T) {
		require.NoError(t, repo.SetOption(ctx, "sloc_width", "800"))
		require.NoError(t, repo.SetOption(ctx, "sloc_mapbox_user", "acme"))
		require.NoError(t, repo.SetOption(ctx, "sloc_width", "640"))

		opts, err := repo.GetOptions(ctx, []string{"sloc_width", "sloc_mapbox_user", "sloc_zoom"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"sloc_width":       "640",
			"sloc_mapbox_user": "acme",
		}, opts)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteOption(ctx, "sloc_mapbox_user"))

		opts, err := repo.GetOptions(ctx, []string{"sloc_mapbox_user"})
		require.NoError(t, err)
		assert.Empty(t, opts)
	})
}
