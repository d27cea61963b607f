package dto

import "github.com/map-service/internal/domain"

// ProvidersResponse - список зарегистрированных провайдеров
type ProvidersResponse struct {
	Providers []domain.ProviderIdentity `json:"providers"`
	Default   string                    `json:"default,omitempty"`
}

// StylesResponse - каталог стилей провайдера
type StylesResponse struct {
	Provider string              `json:"provider"`
	User     string              `json:"user,omitempty"`
	Styles   domain.StyleCatalog `json:"styles"`
	Cached   bool                `json:"cached"`
}

// MapResponse - построенная карта для одной точки
type MapResponse struct {
	Provider   string            `json:"provider"`
	Coordinate domain.Coordinate `json:"coordinate"`
	Params     domain.MapParams  `json:"params"`
	StaticURL  string            `json:"static_url"`
	LinkURL    string            `json:"link_url"`
	HTML       string            `json:"html"`
}

// ArchiveResponse - карта с несколькими точками
type ArchiveResponse struct {
	Provider  string           `json:"provider"`
	Params    domain.MapParams `json:"params"`
	Locations int              `json:"locations"`
	StaticURL string           `json:"static_url"`
}

// OptionsResponse - сохраненные настройки карт
type OptionsResponse struct {
	Options map[string]string `json:"options"`
}
