package schema

// WeatherConditions are the raw weather inputs of a condition score.
type WeatherConditions struct {
	Precipitation float64 `json:"precipitation"` // mm/hr
	WindSpeed     float64 `json:"windSpeed"`     // mph
	Temperature   float64 `json:"temperature"`   // °F
}

// WeatherData is the weather endpoint response, one snapshot per
// coordinate within the cache window.
type WeatherData struct {
	Temperature    int    `json:"temperature"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	WindSpeed      int    `json:"windSpeed"`
	ConditionScore int    `json:"conditionScore"`
}
