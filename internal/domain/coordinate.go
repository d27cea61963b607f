package domain

// Coordinate - точка на карте. Latitude и Longitude либо заданы обе, либо
// не заданы вовсе; Altitude опциональна (метры над эллипсоидом WGS84).
type Coordinate struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
}

// NewCoordinate создает координату без высоты
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Latitude: &lat, Longitude: &lon}
}

// WithAltitude возвращает копию координаты с заданной высотой
func (c Coordinate) WithAltitude(alt float64) Coordinate {
	c.Altitude = &alt
	return c
}

// HasPosition сообщает, заданы ли широта и долгота
func (c Coordinate) HasPosition() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// IsEmpty сообщает, что ни одно поле не задано
func (c Coordinate) IsEmpty() bool {
	return c.Latitude == nil && c.Longitude == nil && c.Altitude == nil
}
