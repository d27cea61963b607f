package usecase

import (
	"context"
	"strings"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// OptionUseCase управляет сохраненными настройками карт
type OptionUseCase struct {
	optionRepo repository.OptionRepository
	keys       map[string]struct{}
	names      []string
	logger     *zap.Logger

	// события обновления стилей: имя настройки -> провайдер
	events   repository.StreamRepository
	triggers map[string]string
}

// NewOptionUseCase создает новый экземпляр OptionUseCase; optionRepo может быть nil
func NewOptionUseCase(optionRepo repository.OptionRepository, keys []string, logger *zap.Logger) *OptionUseCase {
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	return &OptionUseCase{
		optionRepo: optionRepo,
		keys:       known,
		names:      keys,
		logger:     logger,
	}
}

// WithRefreshEvents включает публикацию StyleRefreshEvent при изменении
// настроек из triggers (имя настройки -> slug провайдера)
func (uc *OptionUseCase) WithRefreshEvents(events repository.StreamRepository, triggers map[string]string) *OptionUseCase {
	uc.events = events
	uc.triggers = triggers
	return uc
}

// List возвращает все сохраненные настройки
func (uc *OptionUseCase) List(ctx context.Context) (*dto.OptionsResponse, error) {
	if err := uc.available(); err != nil {
		return nil, err
	}

	opts, err := uc.optionRepo.GetOptions(ctx, uc.names)
	if err != nil {
		uc.logger.Error("Failed to list options", zap.Error(err))
		return nil, dbError(err)
	}
	return &dto.OptionsResponse{Options: opts}, nil
}

// Set сохраняет значение известной настройки
func (uc *OptionUseCase) Set(ctx context.Context, name, value string) error {
	if err := uc.available(); err != nil {
		return err
	}
	if err := uc.checkName(name); err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return apperrors.NewValidationError("option value must not be empty")
	}

	if err := uc.optionRepo.SetOption(ctx, name, value); err != nil {
		return dbError(err)
	}

	uc.logger.Info("Map option updated", zap.String("name", name))
	uc.requestRefresh(ctx, name)
	return nil
}

// Delete удаляет настройку, возвращая значение по умолчанию
func (uc *OptionUseCase) Delete(ctx context.Context, name string) error {
	if err := uc.available(); err != nil {
		return err
	}
	if err := uc.checkName(name); err != nil {
		return err
	}

	if err := uc.optionRepo.DeleteOption(ctx, name); err != nil {
		return dbError(err)
	}

	uc.logger.Info("Map option deleted", zap.String("name", name))
	uc.requestRefresh(ctx, name)
	return nil
}

// requestRefresh публикует событие обновления стилей; ошибка не критична,
// каталог все равно обновится по расписанию
func (uc *OptionUseCase) requestRefresh(ctx context.Context, name string) {
	if uc.events == nil {
		return
	}
	slug, ok := uc.triggers[name]
	if !ok {
		return
	}

	event := domain.NewStyleRefreshEvent(slug, "option "+name+" changed")
	if err := uc.events.PublishToStream(ctx, domain.StreamStylesRefresh, event); err != nil {
		uc.logger.Warn("Failed to publish style refresh event",
			zap.String("provider", slug),
			zap.Error(err))
		return
	}
	uc.logger.Debug("Style refresh requested",
		zap.String("provider", slug),
		zap.String("event_id", event.EventID.String()))
}

func (uc *OptionUseCase) available() error {
	if uc.optionRepo == nil {
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{
			"reason": "option store is disabled",
		})
	}
	return nil
}

func (uc *OptionUseCase) checkName(name string) error {
	if _, ok := uc.keys[name]; !ok {
		return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"option": name,
			"reason": "unknown option",
		})
	}
	return nil
}

func dbError(err error) error {
	tmpl := apperrors.ErrDatabaseError
	return apperrors.Wrap(tmpl.Code, tmpl.Message, tmpl.StatusCode, err)
}
