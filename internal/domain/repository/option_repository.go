package repository

import "context"

// OptionRepository определяет хранилище настроек хост-приложения
type OptionRepository interface {
	// GetOptions возвращает значения указанных настроек; отсутствующие ключи пропускаются
	GetOptions(ctx context.Context, names []string) (map[string]string, error)

	// SetOption сохраняет значение настройки
	SetOption(ctx context.Context, name, value string) error

	// DeleteOption удаляет настройку
	DeleteOption(ctx context.Context, name string) error
}
