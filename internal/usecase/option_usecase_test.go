package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-service/internal/domain"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/usecase"
)

func TestOptionUseCase(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	keys := []string{"sloc_width", "sloc_mapbox_user"}

	t.Run("list", func(t *testing.T) {
		repo := &MockOptionRepository{}
		repo.On("GetOptions", ctx, keys).Return(map[string]string{"sloc_width": "800"}, nil)

		uc := usecase.NewOptionUseCase(repo, keys, logger)
		resp, err := uc.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, "800", resp.Options["sloc_width"])
		repo.AssertExpectations(t)
	})

	t.Run("set trims value", func(t *testing.T) {
		repo := &MockOptionRepository{}
		repo.On("SetOption", ctx, "sloc_mapbox_user", "acme").Return(nil)

		uc := usecase.NewOptionUseCase(repo, keys, logger)
		require.NoError(t, uc.Set(ctx, "sloc_mapbox_user", "  acme "))
		repo.AssertExpectations(t)
	})

	t.Run("unknown option is rejected", func(t *testing.T) {
		repo := &MockOptionRepository{}
		uc := usecase.NewOptionUseCase(repo, keys, logger)

		err := uc.Set(ctx, "siteurl", "x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

		err = uc.Delete(ctx, "siteurl")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		repo.AssertNotCalled(t, "SetOption")
	})

	t.Run("empty value", func(t *testing.T) {
		uc := usecase.NewOptionUseCase(&MockOptionRepository{}, keys, logger)
		err := uc.Set(ctx, "sloc_width", "   ")
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &MockOptionRepository{}
		repo.On("DeleteOption", ctx, "sloc_width").Return(errors.New("db down"))

		uc := usecase.NewOptionUseCase(repo, keys, logger)
		err := uc.Delete(ctx, "sloc_width")

		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
		assert.EqualError(t, errors.Unwrap(err), "db down")
	})

	t.Run("store disabled", func(t *testing.T) {
		uc := usecase.NewOptionUseCase(nil, keys, logger)

		_, err := uc.List(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
	})

	t.Run("account change publishes refresh event", func(t *testing.T) {
		repo := &MockOptionRepository{}
		repo.On("SetOption", ctx, "sloc_mapbox_user", "acme").Return(nil)
		repo.On("SetOption", ctx, "sloc_width", "640").Return(nil)

		events := &MockStreamRepository{}
		events.On("PublishToStream", ctx, domain.StreamStylesRefresh, mock.MatchedBy(func(e domain.StyleRefreshEvent) bool {
			return e.Provider == "mapbox" && e.Validate() == nil
		})).Return(nil).Once()

		uc := usecase.NewOptionUseCase(repo, keys, logger).
			WithRefreshEvents(events, map[string]string{"sloc_mapbox_user": "mapbox"})

		require.NoError(t, uc.Set(ctx, "sloc_mapbox_user", "acme"))
		require.NoError(t, uc.Set(ctx, "sloc_width", "640"))
		events.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the update", func(t *testing.T) {
		repo := &MockOptionRepository{}
		repo.On("DeleteOption", ctx, "sloc_mapbox_user").Return(nil)

		events := &MockStreamRepository{}
		events.On("PublishToStream", ctx, domain.StreamStylesRefresh, mock.Anything).Return(errors.New("redis down"))

		uc := usecase.NewOptionUseCase(repo, keys, logger).
			WithRefreshEvents(events, map[string]string{"sloc_mapbox_user": "mapbox"})

		assert.NoError(t, uc.Delete(ctx, "sloc_mapbox_user"))
		events.AssertExpectations(t)
	})
}
