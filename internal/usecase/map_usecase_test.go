package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/infrastructure/mapbox"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/provider"
	"github.com/map-service/internal/usecase"
	"github.com/map-service/internal/usecase/dto"
)

var optionKeys = []string{mapbox.OptionAPI, mapbox.OptionUser, mapbox.OptionStyle, provider.OptionZoom}

func newMapboxServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRegistry(t *testing.T, baseURL string) *provider.Registry {
	t.Helper()
	reg := provider.NewRegistry()
	require.NoError(t, reg.Register(mapbox.Identity(), mapbox.Factory(mapbox.WithBaseURL(baseURL))))
	return reg
}

func TestMapUseCase_Providers(t *testing.T) {
	uc := usecase.NewMapUseCase(newRegistry(t, "http://unused"), nil, nil, provider.MapOptions{}, nil, time.Hour, zap.NewNop())

	providers := uc.Providers()
	require.Len(t, providers, 1)
	assert.Equal(t, mapbox.Slug, providers[0].Slug)
}

func TestMapUseCase_Styles(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionUser: "acme"}

	t.Run("cache hit skips vendor", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[{"id":"x","name":"X"}]`, &calls)
		cacheRepo := &MockCacheRepository{}
		cached := domain.StyleCatalog{"cached": "Cached"}
		cacheRepo.On("GetStyles", ctx, mapbox.Slug, "acme").Return(cached, nil)

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		resp, err := uc.Styles(ctx, mapbox.Slug, "")

		require.NoError(t, err)
		assert.True(t, resp.Cached)
		assert.Equal(t, cached, resp.Styles)
		assert.Equal(t, "acme", resp.User)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache miss fetches and stores", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[{"id":"x","name":"X"}]`, &calls)
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStyles", ctx, mapbox.Slug, "acme").Return(nil, nil)
		cacheRepo.On("SetStyles", ctx, mapbox.Slug, "acme", mock.AnythingOfType("domain.StyleCatalog"), time.Hour).Return(nil)

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		resp, err := uc.Styles(ctx, mapbox.Slug, "")

		require.NoError(t, err)
		assert.False(t, resp.Cached)
		assert.Equal(t, "X", resp.Styles["x"])
		assert.Equal(t, "Streets", resp.Styles["streets-v11"])
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache errors are ignored", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[{"id":"x","name":"X"}]`, &calls)
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStyles", ctx, mapbox.Slug, "acme").Return(nil, errors.New("redis down"))
		cacheRepo.On("SetStyles", ctx, mapbox.Slug, "acme", mock.Anything, time.Hour).Return(errors.New("redis down"))

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		resp, err := uc.Styles(ctx, mapbox.Slug, "")

		require.NoError(t, err)
		assert.Equal(t, "X", resp.Styles["x"])
	})

	t.Run("public account without cache", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[]`, &calls)

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, nil, defaults, nil, time.Hour, logger)
		resp, err := uc.Styles(ctx, mapbox.Slug, mapbox.PublicUser)

		require.NoError(t, err)
		assert.Equal(t, mapbox.DefaultStyles(), resp.Styles)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("foreign account is rejected without vendor call", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[{"id":"x","name":"X"}]`, &calls)
		cacheRepo := &MockCacheRepository{}

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		_, err := uc.Styles(ctx, mapbox.Slug, "someone-else")

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
		cacheRepo.AssertNotCalled(t, "GetStyles", mock.Anything, mock.Anything, mock.Anything)
		cacheRepo.AssertNotCalled(t, "SetStyles", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("configured account named explicitly", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusOK, `[]`, &calls)
		cacheRepo := &MockCacheRepository{}
		cached := domain.StyleCatalog{"cached": "Cached"}
		cacheRepo.On("GetStyles", ctx, mapbox.Slug, "acme").Return(cached, nil)

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		resp, err := uc.Styles(ctx, mapbox.Slug, "acme")

		require.NoError(t, err)
		assert.True(t, resp.Cached)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("vendor failure is a provider error", func(t *testing.T) {
		var calls int32
		srv := newMapboxServer(t, http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`, &calls)
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("GetStyles", ctx, mapbox.Slug, "acme").Return(nil, nil)

		uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, time.Hour, logger)
		_, err := uc.Styles(ctx, mapbox.Slug, "")

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeProvider))
		cacheRepo.AssertNotCalled(t, "SetStyles", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown provider", func(t *testing.T) {
		uc := usecase.NewMapUseCase(newRegistry(t, "http://unused"), nil, nil, defaults, nil, time.Hour, logger)
		_, err := uc.Styles(ctx, "nope", "")

		assert.ErrorIs(t, err, apperrors.ErrProviderNotFound)
	})
}

func TestMapUseCase_RefreshStyles(t *testing.T) {
	ctx := context.Background()
	var calls int32
	srv := newMapboxServer(t, http.StatusOK, `[{"id":"x","name":"X"}]`, &calls)

	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("SetStyles", ctx, mapbox.Slug, "acme", mock.Anything, 30*time.Minute).Return(nil)

	defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionUser: "acme"}
	uc := usecase.NewMapUseCase(newRegistry(t, srv.URL), nil, cacheRepo, defaults, nil, 30*time.Minute, zap.NewNop())

	styles, err := uc.RefreshStyles(ctx, mapbox.Slug)

	require.NoError(t, err)
	assert.Equal(t, "X", styles["x"])
	cacheRepo.AssertNotCalled(t, "GetStyles", mock.Anything, mock.Anything, mock.Anything)
	cacheRepo.AssertExpectations(t)
}

func TestMapUseCase_Render(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, "https://api.mapbox.com")

	t.Run("stored options override config", func(t *testing.T) {
		optionRepo := &MockOptionRepository{}
		optionRepo.On("GetOptions", ctx, optionKeys).Return(map[string]string{
			mapbox.OptionStyle:  "streets-v11",
			provider.OptionZoom: "5",
		}, nil)

		defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionStyle: "dark-v10"}
		uc := usecase.NewMapUseCase(reg, optionRepo, nil, defaults, optionKeys, time.Hour, zap.NewNop())

		resp, err := uc.Render(ctx, mapbox.Slug, dto.MapRequest{
			Lat:    provider.Float(10),
			Lon:    provider.Float(20),
			Width:  provider.Int(800),
			Height: provider.Int(600),
		})

		require.NoError(t, err)
		assert.Equal(t,
			"https://api.mapbox.com/styles/v1/mapbox/streets-v11/static/pin-s(20,10)/20,10,5,0,0/800x600?access_token=K",
			resp.StaticURL)
		assert.Equal(t, "https://www.openstreetmap.org/?mlat=10&mlon=20#map=5/10/20", resp.LinkURL)
		assert.Contains(t, resp.HTML, `<img src="`)
		assert.Equal(t, 5, resp.Params.Zoom)
		require.NotNil(t, resp.Coordinate.Latitude)
		assert.Equal(t, 10.0, *resp.Coordinate.Latitude)
		optionRepo.AssertExpectations(t)
	})

	t.Run("option store failure falls back to config", func(t *testing.T) {
		optionRepo := &MockOptionRepository{}
		optionRepo.On("GetOptions", ctx, optionKeys).Return(nil, errors.New("db down"))

		defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionStyle: "dark-v10"}
		uc := usecase.NewMapUseCase(reg, optionRepo, nil, defaults, optionKeys, time.Hour, zap.NewNop())

		resp, err := uc.Render(ctx, mapbox.Slug, dto.MapRequest{Lat: provider.Float(1), Lon: provider.Float(2)})

		require.NoError(t, err)
		assert.Contains(t, resp.StaticURL, "/styles/v1/mapbox/dark-v10/static/")
		assert.Equal(t, provider.DefaultWidth, resp.Params.Width)
	})

	t.Run("missing key yields empty static url", func(t *testing.T) {
		uc := usecase.NewMapUseCase(reg, nil, nil, provider.MapOptions{}, nil, time.Hour, zap.NewNop())

		resp, err := uc.Render(ctx, mapbox.Slug, dto.MapRequest{Lat: provider.Float(1), Lon: provider.Float(2)})

		require.NoError(t, err)
		assert.Empty(t, resp.StaticURL)
		assert.Empty(t, resp.HTML)
		assert.NotEmpty(t, resp.LinkURL)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := usecase.NewMapUseCase(reg, nil, nil, provider.MapOptions{}, nil, time.Hour, zap.NewNop())

		_, err := uc.Render(ctx, mapbox.Slug, dto.MapRequest{Lat: provider.Float(91), Lon: provider.Float(2)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)

		_, err = uc.Render(ctx, mapbox.Slug, dto.MapRequest{Lat: provider.Float(1)})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	})
}

func TestMapUseCase_HTML(t *testing.T) {
	ctx := context.Background()
	defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionStyle: "streets-v11"}
	uc := usecase.NewMapUseCase(newRegistry(t, "https://api.mapbox.com"), nil, nil, defaults, nil, time.Hour, zap.NewNop())
	req := dto.MapRequest{Lat: provider.Float(10), Lon: provider.Float(20)}

	html, err := uc.HTML(ctx, mapbox.Slug, req, true)
	require.NoError(t, err)
	assert.Contains(t, html, `<a target="_blank" href="https://www.openstreetmap.org/`)

	html, err = uc.HTML(ctx, mapbox.Slug, req, false)
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestMapUseCase_Archive(t *testing.T) {
	ctx := context.Background()
	defaults := provider.MapOptions{mapbox.OptionAPI: "K", mapbox.OptionStyle: "streets-v11"}
	uc := usecase.NewMapUseCase(newRegistry(t, "https://api.mapbox.com"), nil, nil, defaults, nil, time.Hour, zap.NewNop())

	resp, err := uc.Archive(ctx, mapbox.Slug, dto.ArchiveRequest{
		Locations: []dto.Point{
			{Lat: provider.Float(10), Lon: provider.Float(20)},
			{Lat: provider.Float(11), Lon: provider.Float(21), Alt: provider.Float(100)},
		},
		Width:  provider.Int(400),
		Height: provider.Int(300),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Locations)
	assert.Equal(t,
		"https://api.mapbox.com/styles/v1/mapbox/streets-v11/static/pin-s(20,10),pin-s(21,11)/auto/400x300?access_token=K",
		resp.StaticURL)

	_, err = uc.Archive(ctx, mapbox.Slug, dto.ArchiveRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = uc.Archive(ctx, mapbox.Slug, dto.ArchiveRequest{
		Locations: []dto.Point{{Lat: provider.Float(10), Lon: provider.Float(200)}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}
