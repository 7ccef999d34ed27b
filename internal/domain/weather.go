package domain

// Units selects the measurement system for weather data.
type Units string

const (
	UnitsImperial Units = "imperial" // Fahrenheit, mph
	UnitsMetric   Units = "metric"   // Celsius, km/h
)

// Weather is the normalized current-conditions payload served to the
// dashboard, independent of which provider produced it.
type Weather struct {
	Temperature   int           `json:"temperature"`
	Condition     string        `json:"condition"`
	Location      string        `json:"location"`
	Humidity      int           `json:"humidity"`
	WindSpeed     int           `json:"windSpeed"`
	WindDirection string        `json:"windDirection"`
	Pressure      int           `json:"pressure"`
	Visibility    int           `json:"visibility"`
	UVIndex       int           `json:"uvIndex"`
	Icon          string        `json:"icon"`
	Forecast      []ForecastDay `json:"forecast"`
}

// ForecastDay is one entry of the multi-day forecast.
type ForecastDay struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}
