package mapbox

import "github.com/map-service/internal/domain"

// defaultStyles - стили, опубликованные в общем аккаунте mapbox.
// Они доступны любому аккаунту и всегда входят в каталог.
var defaultStyles = domain.StyleCatalog{
	"streets-v11":                  "Streets",
	"outdoors-v11":                 "Outdoor",
	"light-v10":                    "Light",
	"dark-v10":                     "Dark",
	"satellite-v9":                 "Satellite",
	"satellite-streets-v11":        "Satellite Streets",
	"navigation-preview-day-v4":    "Navigation Preview Day",
	"navigation-preview-night-v4":  "Navigation Preview Night",
	"navigation-guidance-day-v4":   "Navigation Guidance Day",
	"navigation-guidance-night-v4": "Navigation Guidance Night",
}

// DefaultStyles возвращает копию стандартного каталога
func DefaultStyles() domain.StyleCatalog {
	return defaultStyles.Clone()
}

// IsDefaultStyle сообщает, что стиль живет в общем пространстве имен mapbox
func IsDefaultStyle(style string) bool {
	return defaultStyles.Has(style)
}
