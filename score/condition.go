package score

import (
	"math"

	"github.com/rrabbani2/GolfMaps/schema"
)

// CalculateCourseCondition turns a weather sample into a 0-100 playability
// score by subtracting rain, wind and temperature penalties from 100.
func CalculateCourseCondition(weather schema.WeatherConditions) int {
	rainPenalty := calculateRainPenalty(weather.Precipitation)
	windPenalty := calculateWindPenalty(weather.WindSpeed)
	tempPenalty := calculateTemperaturePenalty(weather.Temperature)

	condition := 100 - float64(rainPenalty+windPenalty+tempPenalty)

	return int(math.Max(0, math.Min(100, math.Round(condition))))
}

// calculateRainPenalty maps precipitation (mm/hr) into a 0-40 penalty.
func calculateRainPenalty(precipitation float64) int {
	switch {
	case precipitation <= 0.2:
		return 0
	case precipitation <= 1:
		return 10
	case precipitation <= 3:
		return 20
	case precipitation <= 6:
		return 30
	default:
		return 40
	}
}

// calculateWindPenalty maps wind speed (mph) into a 0-30 penalty.
func calculateWindPenalty(windSpeed float64) int {
	switch {
	case windSpeed <= 7:
		return 0
	case windSpeed <= 12:
		return 5
	case windSpeed <= 18:
		return 10
	case windSpeed <= 25:
		return 20
	default:
		return 30
	}
}

// calculateTemperaturePenalty maps temperature (°F) into a 0-30 penalty.
// The 60-80°F band is ideal.
func calculateTemperaturePenalty(temperature float64) int {
	switch {
	case temperature >= 60 && temperature <= 80:
		return 0
	case (temperature >= 50 && temperature < 60) || (temperature > 80 && temperature <= 90):
		return 10
	case (temperature >= 40 && temperature < 50) || (temperature > 90 && temperature <= 100):
		return 20
	default:
		return 30
	}
}
