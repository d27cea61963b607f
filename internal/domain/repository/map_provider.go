package repository

import (
	"context"

	"github.com/map-service/internal/domain"
)

// CoordinateHolder хранит и валидирует координаты провайдера
type CoordinateHolder interface {
	// Set принимает широту, долготу и (опционально) высоту в позиционной форме.
	// Возвращает false, если широта или долгота не числовые; состояние при этом не меняется.
	Set(lat, lng, alt interface{}) bool

	// SetBundle принимает набор полей (latitude, longitude, altitude и параметры карты)
	SetBundle(bundle map[string]interface{}) bool

	// Get возвращает координату; ok == false, если ничего не задано
	Get() (domain.Coordinate, bool)
}

// MapRenderer строит карты для текущей координаты
type MapRenderer interface {
	// Styles возвращает каталог стилей (может обращаться к API вендора)
	Styles(ctx context.Context) (domain.StyleCatalog, error)

	// StaticMapURL возвращает URL статичного изображения или "" при неполной конфигурации
	StaticMapURL() string

	// ArchiveMapURL возвращает URL изображения с несколькими точками
	ArchiveMapURL(locations []domain.Coordinate) string

	// MapLinkURL возвращает ссылку на интерактивную карту
	MapLinkURL() string

	// MapHTML возвращает разметку статичной или динамической карты
	MapHTML(static bool) string
}

// MapProvider - полный контракт провайдера карт
type MapProvider interface {
	CoordinateHolder
	MapRenderer

	Identity() domain.ProviderIdentity
	Params() domain.MapParams
}

// PublicCatalog реализуют провайдеры с общедоступными аккаунтами:
// каталог такого аккаунта известен без запроса к API вендора
type PublicCatalog interface {
	IsPublicAccount(user string) bool
}
