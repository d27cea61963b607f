package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/map-service/internal/domain/repository"
	"go.uber.org/zap"
)

const optionsSchema = `
CREATE TABLE IF NOT EXISTS map_options (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type optionRow struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

type optionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewOptionRepository создает хранилище настроек карт в PostgreSQL
func NewOptionRepository(db *DB) repository.OptionRepository {
	return &optionRepository{
		db:     db,
		logger: db.logger,
	}
}

// Migrate создает таблицу настроек, если ее нет
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, optionsSchema); err != nil {
		return fmt.Errorf("create map_options: %w", err)
	}
	return nil
}

// GetOptions возвращает значения указанных настроек
func (r *optionRepository) GetOptions(ctx context.Context, names []string) (map[string]string, error) {
	result := make(map[string]string, len(names))
	if len(names) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT name, value FROM map_options WHERE name IN (?)`, names)
	if err != nil {
		return nil, fmt.Errorf("build options query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []optionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to load options", zap.Strings("names", names), zap.Error(err))
		return nil, fmt.Errorf("select options: %w", err)
	}

	for _, row := range rows {
		result[row.Name] = row.Value
	}

	r.logger.Debug("Options loaded",
		zap.Int("requested", len(names)),
		zap.Int("found", len(result)))

	return result, nil
}

// SetOption сохраняет значение настройки (upsert)
func (r *optionRepository) SetOption(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO map_options (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		r.logger.Error("Failed to save option", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("upsert option %s: %w", name, err)
	}
	return nil
}

// DeleteOption удаляет настройку
func (r *optionRepository) DeleteOption(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM map_options WHERE name = $1`, name); err != nil {
		r.logger.Error("Failed to delete option", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("delete option %s: %w", name, err)
	}
	return nil
}
