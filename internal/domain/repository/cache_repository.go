package repository

import (
	"context"
	"time"

	"github.com/map-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetStyles получает каталог стилей провайдера для аккаунта; nil при промахе
	GetStyles(ctx context.Context, provider, user string) (domain.StyleCatalog, error)

	// SetStyles сохраняет каталог стилей в кеше
	SetStyles(ctx context.Context, provider, user string, styles domain.StyleCatalog, ttl time.Duration) error
}
