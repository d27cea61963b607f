package utils

import "math"

const (
	mmPerInch    = 25.4
	feetPerMeter = 3.2808399
	// 1609, а не 1609.344: отображаемые расстояния рассчитаны на это значение
	metersPerMile = 1609
	mpsPerMph     = 0.44704
)

// MMToInches переводит миллиметры в дюймы
func MMToInches(mm float64) float64 {
	return mm / mmPerInch
}

// InchesToMM переводит дюймы в миллиметры
func InchesToMM(inch float64) float64 {
	return inch * mmPerInch
}

// FeetToMeters переводит футы в метры
func FeetToMeters(feet float64) float64 {
	return feet / feetPerMeter
}

// MetersToFeet переводит метры в футы
func MetersToFeet(meters float64) float64 {
	return meters * feetPerMeter
}

// MetersToMiles переводит метры в мили
func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}

// MilesToMeters переводит мили в метры
func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}

// MphToMps переводит мили в час в метры в секунду с округлением до целого
func MphToMps(mph float64) float64 {
	return math.Round(mph * mpsPerMph)
}

// FirstOf возвращает значение первого найденного ключа
func FirstOf(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return nil, false
}
