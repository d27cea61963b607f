package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const stylesKeyPrefix = "styles"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// StylesKey - ключ кеша каталога стилей для пары провайдер/аккаунт
func StylesKey(provider, user string) string {
	return fmt.Sprintf("%s:%s:%s", stylesKeyPrefix, provider, user)
}

// GetStyles получает каталог стилей из кеша
func (r *cacheRepository) GetStyles(ctx context.Context, provider, user string) (domain.StyleCatalog, error) {
	data, err := r.Get(ctx, StylesKey(provider, user))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var styles domain.StyleCatalog
	if err := json.Unmarshal(data, &styles); err != nil {
		r.logger.Error("Failed to unmarshal styles from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal styles: %w", err)
	}

	return styles, nil
}

// SetStyles сохраняет каталог стилей в кеше
func (r *cacheRepository) SetStyles(ctx context.Context, provider, user string, styles domain.StyleCatalog, ttl time.Duration) error {
	data, err := json.Marshal(styles)
	if err != nil {
		r.logger.Error("Failed to marshal styles", zap.Error(err))
		return fmt.Errorf("marshal styles: %w", err)
	}

	return r.Set(ctx, StylesKey(provider, user), data, ttl)
}
