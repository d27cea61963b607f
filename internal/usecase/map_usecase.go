package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	apperrors "github.com/map-service/internal/pkg/errors"
	"github.com/map-service/internal/pkg/utils"
	"github.com/map-service/internal/provider"
	"github.com/map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapUseCase строит карты через зарегистрированных провайдеров
type MapUseCase struct {
	registry   *provider.Registry
	optionRepo repository.OptionRepository
	cacheRepo  repository.CacheRepository
	defaults   provider.Options
	optionKeys []string
	stylesTTL  time.Duration
	logger     *zap.Logger
}

// NewMapUseCase создает новый экземпляр MapUseCase.
// optionRepo и cacheRepo могут быть nil: тогда используются только
// настройки из конфигурации и каталог стилей не кешируется.
func NewMapUseCase(
	registry *provider.Registry,
	optionRepo repository.OptionRepository,
	cacheRepo repository.CacheRepository,
	defaults provider.Options,
	optionKeys []string,
	stylesTTL time.Duration,
	logger *zap.Logger,
) *MapUseCase {
	return &MapUseCase{
		registry:   registry,
		optionRepo: optionRepo,
		cacheRepo:  cacheRepo,
		defaults:   defaults,
		optionKeys: optionKeys,
		stylesTTL:  stylesTTL,
		logger:     logger,
	}
}

// Providers возвращает зарегистрированных провайдеров
func (uc *MapUseCase) Providers() []domain.ProviderIdentity {
	return uc.registry.Identities()
}

// Styles возвращает каталог стилей настроенного аккаунта, используя кеш когда возможно.
// Другой аккаунт допускается, только если его каталог публичный: ключ сервиса
// не используется для чужих аккаунтов и такие ответы не кешируются.
func (uc *MapUseCase) Styles(ctx context.Context, slug, user string) (*dto.StylesResponse, error) {
	opts := uc.options(ctx)

	p, err := uc.registry.New(slug, provider.Args{}, opts)
	if err != nil {
		return nil, err
	}
	account := p.Params().User

	if user != "" && user != account {
		return uc.publicStyles(ctx, slug, user, p, opts)
	}

	// 1. Проверяем кеш
	if uc.cacheRepo != nil && account != "" {
		cached, err := uc.cacheRepo.GetStyles(ctx, slug, account)
		if err != nil {
			uc.logger.Warn("Failed to get styles from cache",
				zap.String("provider", slug),
				zap.Error(err))
		} else if cached != nil {
			uc.logger.Debug("Styles fetched from cache", zap.String("provider", slug))
			return &dto.StylesResponse{Provider: slug, User: account, Styles: cached, Cached: true}, nil
		}
	}

	// 2. Запрашиваем провайдера
	styles, err := uc.fetchStyles(ctx, slug, p)
	if err != nil {
		return nil, err
	}

	return &dto.StylesResponse{Provider: slug, User: account, Styles: styles}, nil
}

func (uc *MapUseCase) publicStyles(
	ctx context.Context,
	slug, user string,
	p repository.MapProvider,
	opts provider.Options,
) (*dto.StylesResponse, error) {
	public, ok := p.(repository.PublicCatalog)
	if !ok || !public.IsPublicAccount(user) {
		uc.logger.Debug("Styles of a foreign account rejected",
			zap.String("provider", slug),
			zap.String("user", user))
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"user":   user,
			"reason": "only the configured account or a public account can be listed",
		})
	}

	p, err := uc.registry.New(slug, provider.Args{User: provider.String(user)}, opts)
	if err != nil {
		return nil, err
	}
	styles, err := p.Styles(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch public styles",
			zap.String("provider", slug),
			zap.String("user", user),
			zap.Error(err))
		return nil, err
	}
	return &dto.StylesResponse{Provider: slug, User: user, Styles: styles}, nil
}

// RefreshStyles принудительно обновляет каталог стилей в кеше
func (uc *MapUseCase) RefreshStyles(ctx context.Context, slug string) (domain.StyleCatalog, error) {
	uc.logger.Info("Refreshing styles", zap.String("provider", slug))

	p, err := uc.registry.New(slug, provider.Args{}, uc.options(ctx))
	if err != nil {
		return nil, err
	}

	styles, err := uc.fetchStyles(ctx, slug, p)
	if err != nil {
		return nil, fmt.Errorf("refresh styles for %s: %w", slug, err)
	}

	uc.logger.Info("Styles refreshed",
		zap.String("provider", slug),
		zap.Int("count", len(styles)))
	return styles, nil
}

func (uc *MapUseCase) fetchStyles(ctx context.Context, slug string, p repository.MapProvider) (domain.StyleCatalog, error) {
	account := p.Params().User

	styles, err := p.Styles(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch styles",
			zap.String("provider", slug),
			zap.String("user", account),
			zap.Error(err))
		return nil, err
	}

	// Пустой каталог без аккаунта не кешируем
	if uc.cacheRepo != nil && account != "" {
		if err := uc.cacheRepo.SetStyles(ctx, slug, account, styles, uc.stylesTTL); err != nil {
			uc.logger.Warn("Failed to cache styles", zap.String("provider", slug), zap.Error(err))
		}
	}

	return styles, nil
}

// Render строит статичную карту, ссылку и HTML для одной точки
func (uc *MapUseCase) Render(ctx context.Context, slug string, req dto.MapRequest) (*dto.MapResponse, error) {
	p, err := uc.newProvider(ctx, slug, req)
	if err != nil {
		return nil, err
	}

	coord, _ := p.Get()
	resp := &dto.MapResponse{
		Provider:   slug,
		Coordinate: coord,
		Params:     p.Params(),
		StaticURL:  p.StaticMapURL(),
		LinkURL:    p.MapLinkURL(),
		HTML:       p.MapHTML(true),
	}

	if resp.StaticURL == "" {
		uc.logger.Debug("Static map unavailable, provider not configured", zap.String("provider", slug))
	}
	return resp, nil
}

// HTML возвращает разметку карты; для динамической карты результат пустой
func (uc *MapUseCase) HTML(ctx context.Context, slug string, req dto.MapRequest, static bool) (string, error) {
	p, err := uc.newProvider(ctx, slug, req)
	if err != nil {
		return "", err
	}
	return p.MapHTML(static), nil
}

// Archive строит одну статичную карту с маркерами для всех точек
func (uc *MapUseCase) Archive(ctx context.Context, slug string, req dto.ArchiveRequest) (*dto.ArchiveResponse, error) {
	if len(req.Locations) == 0 {
		return nil, apperrors.NewValidationError("at least one location is required")
	}

	locations := make([]domain.Coordinate, 0, len(req.Locations))
	for i, pt := range req.Locations {
		if pt.Lat == nil || pt.Lon == nil || !utils.ValidateCoordinates(*pt.Lat, *pt.Lon) {
			return nil, apperrors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"index": i})
		}
		c := domain.NewCoordinate(*pt.Lat, *pt.Lon)
		if pt.Alt != nil {
			c = c.WithAltitude(*pt.Alt)
		}
		locations = append(locations, c)
	}

	args := provider.Args{Width: req.Width, Height: req.Height}
	if req.Style != "" {
		args.Style = provider.String(req.Style)
	}
	if req.User != "" {
		args.User = provider.String(req.User)
	}

	p, err := uc.registry.New(slug, args, uc.options(ctx))
	if err != nil {
		return nil, err
	}

	return &dto.ArchiveResponse{
		Provider:  slug,
		Params:    p.Params(),
		Locations: len(locations),
		StaticURL: p.ArchiveMapURL(locations),
	}, nil
}

func (uc *MapUseCase) newProvider(ctx context.Context, slug string, req dto.MapRequest) (repository.MapProvider, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, apperrors.NewValidationError("lat and lon are required")
	}
	if !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	args := provider.Args{
		Latitude:  req.Lat,
		Longitude: req.Lon,
		Altitude:  req.Alt,
		Width:     req.Width,
		Height:    req.Height,
		MapZoom:   req.Zoom,
	}
	if req.Style != "" {
		args.Style = provider.String(req.Style)
	}
	if req.User != "" {
		args.User = provider.String(req.User)
	}

	p, err := uc.registry.New(slug, args, uc.options(ctx))
	if err != nil {
		return nil, err
	}
	if _, ok := p.Get(); !ok {
		return nil, apperrors.ErrInvalidCoordinates
	}
	return p, nil
}

// options объединяет сохраненные настройки с настройками из конфигурации.
// Ошибка хранилища не прерывает запрос: остаются значения конфигурации.
func (uc *MapUseCase) options(ctx context.Context) provider.Options {
	if uc.optionRepo == nil || len(uc.optionKeys) == 0 {
		return provider.ChainOptions{uc.defaults}
	}

	stored, err := uc.optionRepo.GetOptions(ctx, uc.optionKeys)
	if err != nil {
		uc.logger.Warn("Failed to load stored map options", zap.Error(err))
		return provider.ChainOptions{uc.defaults}
	}

	opts := make(provider.MapOptions, len(stored))
	for name, value := range stored {
		opts[name] = value
	}
	return provider.ChainOptions{opts, uc.defaults}
}
