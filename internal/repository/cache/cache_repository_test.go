package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-service/internal/domain"
)

func newTestRepository(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisForTest(client, zap.NewNop())
}

func TestCacheRepository_Styles(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRepository(t)
	repo := NewCacheRepository(rdb)

	t.Run("miss returns nil", func(t *testing.T) {
		styles, err := repo.GetStyles(ctx, "mapbox", "acme")
		require.NoError(t, err)
		assert.Nil(t, styles)
	})

	t.Run("set then get", func(t *testing.T) {
		catalog := domain.StyleCatalog{"streets-v11": "Streets", "custom": "Custom"}
		require.NoError(t, repo.SetStyles(ctx, "mapbox", "acme", catalog, time.Minute))

		styles, err := repo.GetStyles(ctx, "mapbox", "acme")
		require.NoError(t, err)
		assert.Equal(t, catalog, styles)

		assert.True(t, mr.Exists("styles:mapbox:acme"))
		assert.Equal(t, time.Minute, mr.TTL("styles:mapbox:acme"))
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, repo.SetStyles(ctx, "mapbox", "short", domain.StyleCatalog{"a": "A"}, time.Second))
		mr.FastForward(2 * time.Second)

		styles, err := repo.GetStyles(ctx, "mapbox", "short")
		require.NoError(t, err)
		assert.Nil(t, styles)
	})

	t.Run("corrupted entry is an error", func(t *testing.T) {
		require.NoError(t, mr.Set(StylesKey("mapbox", "broken"), "{not json"))

		_, err := repo.GetStyles(ctx, "mapbox", "broken")
		assert.Error(t, err)
	})
}

func TestCacheRepository_Basic(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRepository(t)
	repo := NewCacheRepository(rdb)

	val, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("k"))

	val, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	mr.FastForward(2 * time.Minute)
	val, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, rdb.Health(ctx))
}

func TestCacheRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRepository(t)
	repo := NewCacheRepository(rdb)
	mr.Close()

	_, err := repo.GetStyles(ctx, "mapbox", "acme")
	assert.Error(t, err)
}
