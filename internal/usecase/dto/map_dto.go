package dto

// MapRequest - параметры построения карты для одной точки
type MapRequest struct {
	Lat    *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon    *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Alt    *float64 `json:"alt,omitempty"`
	Width  *int     `json:"width,omitempty" validate:"omitempty,min=1,max=1280"`
	Height *int     `json:"height,omitempty" validate:"omitempty,min=1,max=1280"`
	Zoom   *int     `json:"zoom,omitempty" validate:"omitempty,map_zoom"`
	Style  string   `json:"style,omitempty" validate:"omitempty,max=128"`
	User   string   `json:"user,omitempty" validate:"omitempty,max=128"`
}

// Point - координаты точки архивной карты
type Point struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Alt *float64 `json:"alt,omitempty"`
}

// ArchiveRequest - запрос карты с несколькими точками
type ArchiveRequest struct {
	Locations []Point `json:"locations" validate:"required,min=1,max=100,dive"`
	Width     *int    `json:"width,omitempty" validate:"omitempty,min=1,max=1280"`
	Height    *int    `json:"height,omitempty" validate:"omitempty,min=1,max=1280"`
	Style     string  `json:"style,omitempty" validate:"omitempty,max=128"`
	User      string  `json:"user,omitempty" validate:"omitempty,max=128"`
}

// OptionRequest - новое значение настройки
type OptionRequest struct {
	Value string `json:"value" validate:"required,max=512"`
}
