package utils

// ValidateCoordinates проверяет, что координаты лежат в допустимых диапазонах
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateZoom проверяет уровень масштабирования веб-карты (0 - 22)
func ValidateZoom(zoom int) bool {
	return zoom >= 0 && zoom <= 22
}
