package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/basegeek/startpage/internal/domain"
)

// DefaultWeatherBaseURL is the OpenWeatherMap API root.
const DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// maxForecastDays bounds the folded daily forecast.
const maxForecastDays = 5

// WeatherClient fetches current conditions and forecast from OpenWeatherMap
// and normalizes them into the dashboard's weather payload.
type WeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewWeatherClient builds a weather fetcher. An empty apiKey is allowed; the
// client then fails every fetch with ErrNotConfigured so callers fall back.
func NewWeatherClient(apiKey, baseURL string, timeout time.Duration) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// owmCurrent mirrors the fields we read from /weather.
type owmCurrent struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Weather    []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// owmForecast mirrors the fields we read from /forecast (3-hourly slots).
type owmForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			TempMax float64 `json:"temp_max"`
			TempMin float64 `json:"temp_min"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// Fetch retrieves current conditions plus a folded daily forecast for a
// location. The two provider calls run concurrently; either failing fails
// the fetch as a whole.
func (w *WeatherClient) Fetch(ctx context.Context, location string, units domain.Units) (*domain.Weather, error) {
	if w.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var (
		current  owmCurrent
		forecast owmForecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.getJSON(gctx, "weather current", w.endpoint("/weather", location, units), &current)
	})
	g.Go(func() error {
		return w.getJSON(gctx, "weather forecast", w.endpoint("/forecast", location, units), &forecast)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(current.Weather) == 0 {
		return nil, parseErr("weather current", fmt.Errorf("empty conditions for %q", location))
	}

	visibility := current.Visibility
	if visibility == 0 {
		visibility = 10000
	}

	return &domain.Weather{
		Temperature:   round(current.Main.Temp),
		Condition:     titleCase(current.Weather[0].Description),
		Location:      fmt.Sprintf("%s, %s", current.Name, current.Sys.Country),
		Humidity:      current.Main.Humidity,
		WindSpeed:     round(current.Wind.Speed),
		WindDirection: windDirection(current.Wind.Deg),
		Pressure:      current.Main.Pressure,
		Visibility:    round(float64(visibility) / 1000),
		UVIndex:       0, // needs a separate provider call, not worth it
		Icon:          iconFor(current.Weather[0].Icon),
		Forecast:      foldForecast(forecast),
	}, nil
}

func (w *WeatherClient) endpoint(path, location string, units domain.Units) string {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", w.apiKey)
	q.Set("units", string(units))
	return w.baseURL + path + "?" + q.Encode()
}

func (w *WeatherClient) getJSON(ctx context.Context, op, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return wrapTransportErr(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return httpStatusErr(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return parseErr(op, err)
	}
	return nil
}

// foldForecast collapses the provider's 3-hourly slots into at most
// maxForecastDays daily entries, keeping each day's extremes.
func foldForecast(f owmForecast) []domain.ForecastDay {
	var (
		order []string
		byDay = make(map[string]*domain.ForecastDay)
	)

	for _, slot := range f.List {
		if len(slot.Weather) == 0 {
			continue
		}
		day := time.Unix(slot.Dt, 0).Weekday().String()

		entry, ok := byDay[day]
		if !ok {
			byDay[day] = &domain.ForecastDay{
				Day:       day,
				High:      round(slot.Main.TempMax),
				Low:       round(slot.Main.TempMin),
				Condition: titleCase(slot.Weather[0].Description),
				Icon:      iconFor(slot.Weather[0].Icon),
			}
			order = append(order, day)
			continue
		}
		if high := round(slot.Main.TempMax); high > entry.High {
			entry.High = high
		}
		if low := round(slot.Main.TempMin); low < entry.Low {
			entry.Low = low
		}
	}

	if len(order) > maxForecastDays {
		order = order[:maxForecastDays]
	}
	days := make([]domain.ForecastDay, 0, len(order))
	for _, day := range order {
		days = append(days, *byDay[day])
	}
	return days
}

// windDirection maps degrees to a 16-point compass rose.
func windDirection(deg float64) string {
	directions := []string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	idx := int(math.Round(deg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return directions[idx]
}

// owmIcons maps OpenWeatherMap icon codes onto the dashboard's closed icon
// vocabulary.
var owmIcons = map[string]string{
	"01d": "sunny",
	"01n": "clear-night",
	"02d": "partly-cloudy",
	"02n": "partly-cloudy-night",
	"03d": "cloudy",
	"03n": "cloudy",
	"04d": "overcast",
	"04n": "overcast",
	"09d": "rain",
	"09n": "rain",
	"10d": "rain",
	"10n": "rain",
	"11d": "thunderstorm",
	"11n": "thunderstorm",
	"13d": "snow",
	"13n": "snow",
	"50d": "fog",
	"50n": "fog",
}

func iconFor(code string) string {
	if icon, ok := owmIcons[code]; ok {
		return icon
	}
	return "partly-cloudy"
}

func round(v float64) int {
	return int(math.Round(v))
}

// titleCase uppercases the first letter of every word, matching how the
// dashboard displays provider condition strings ("light rain" -> "Light Rain").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
