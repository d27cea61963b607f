package config

import (
	"github.com/map-service/internal/infrastructure/mapbox"
	"github.com/map-service/internal/provider"
)

// Options переводит MapsConfig в настройки провайдеров. Незаданные значения
// не попадают в результат, чтобы провайдер применил свои значения по умолчанию.
func (m MapsConfig) Options() provider.MapOptions {
	opts := provider.MapOptions{}
	if m.ContentWidth > 0 {
		opts[provider.OptionContentWidth] = m.ContentWidth
	}
	if m.Width > 0 {
		opts[provider.OptionWidth] = m.Width
	}
	if m.Aspect > 0 {
		opts[provider.OptionAspect] = m.Aspect
	}
	if m.Zoom > 0 {
		opts[provider.OptionZoom] = m.Zoom
	}
	if m.MapboxAPIKey != "" {
		opts[mapbox.OptionAPI] = m.MapboxAPIKey
	}
	if m.MapboxUser != "" {
		opts[mapbox.OptionUser] = m.MapboxUser
	}
	if m.MapboxStyle != "" {
		opts[mapbox.OptionStyle] = m.MapboxStyle
	}
	return opts
}

// OptionKeys - все настройки, которые провайдеры читают из хранилища
func OptionKeys() []string {
	return []string{
		provider.OptionContentWidth,
		provider.OptionWidth,
		provider.OptionAspect,
		provider.OptionZoom,
		mapbox.OptionAPI,
		mapbox.OptionUser,
		mapbox.OptionStyle,
	}
}

// RefreshTriggers - настройки, после изменения которых каталог стилей
// провайдера нужно обновить
func RefreshTriggers() map[string]string {
	return map[string]string{
		mapbox.OptionAPI:  mapbox.Slug,
		mapbox.OptionUser: mapbox.Slug,
	}
}
