package fetch

import (
	"context"
	"time"

	"github.com/basegeek/startpage/internal/domain"
)

// MockSourceName tags responses served from static sample data.
const MockSourceName = "mock"

// MockWeather is the static weather payload served when neither the
// provider nor the cache can produce data.
func MockWeather(location string, units domain.Units) *domain.Weather {
	metric := units == domain.UnitsMetric
	pick := func(m, i int) int {
		if metric {
			return m
		}
		return i
	}

	return &domain.Weather{
		Temperature:   pick(22, 72),
		Condition:     "Partly Cloudy",
		Location:      location,
		Humidity:      65,
		WindSpeed:     pick(15, 8),
		WindDirection: "SW",
		Pressure:      1013,
		Visibility:    pick(16, 10),
		UVIndex:       6,
		Icon:          "partly-cloudy",
		Forecast: []domain.ForecastDay{
			{Day: "Today", High: pick(25, 77), Low: pick(18, 64), Condition: "Partly Cloudy", Icon: "partly-cloudy"},
			{Day: "Tomorrow", High: pick(28, 82), Low: pick(20, 68), Condition: "Sunny", Icon: "sunny"},
		},
	}
}

// MockNewsSource is the final news tier: static sample articles. It never
// fails, so a chain ending with it always produces a response.
type MockNewsSource struct{}

func (MockNewsSource) Name() string { return MockSourceName }

func (MockNewsSource) Fetch(_ context.Context, category string, limit int) ([]domain.Article, error) {
	return MockNews(category, limit), nil
}

// MockNews returns sample articles for a category. Categories without
// dedicated samples fall back to the technology set.
func MockNews(category string, limit int) []domain.Article {
	now := time.Now()
	samples := map[string][]domain.Article{
		"technology": {
			{
				Title:       "AI Breakthrough: New Language Model Achieves Human-Level Performance",
				Description: "Researchers announce a significant advancement in artificial intelligence with a new language model that demonstrates human-level understanding across multiple domains.",
				URL:         "https://example.com/ai-breakthrough",
				Source:      "Tech News Daily",
				PublishedAt: now.Add(-2 * time.Hour),
				ImageURL:    "https://via.placeholder.com/400x200?text=AI+News",
				Category:    "technology",
			},
			{
				Title:       "Quantum Computing Milestone: 1000-Qubit Processor Unveiled",
				Description: "A major tech company reveals its latest quantum processor with unprecedented qubit count, promising to revolutionize computational capabilities.",
				URL:         "https://example.com/quantum-computing",
				Source:      "Quantum Weekly",
				PublishedAt: now.Add(-4 * time.Hour),
				ImageURL:    "https://via.placeholder.com/400x200?text=Quantum+Computing",
				Category:    "technology",
			},
			{
				Title:       "Cybersecurity Alert: New Vulnerability Discovered in Popular Software",
				Description: "Security researchers identify a critical vulnerability affecting millions of users worldwide, patches are being rolled out immediately.",
				URL:         "https://example.com/security-alert",
				Source:      "CyberSec Today",
				PublishedAt: now.Add(-6 * time.Hour),
				ImageURL:    "https://via.placeholder.com/400x200?text=Cybersecurity",
				Category:    "technology",
			},
		},
		"science": {
			{
				Title:       "Mars Mission Update: Rover Discovers Evidence of Ancient Water",
				Description: "Latest findings from the Mars rover mission provide compelling evidence of ancient water activity on the Red Planet.",
				URL:         "https://example.com/mars-discovery",
				Source:      "Space Science Journal",
				PublishedAt: now.Add(-3 * time.Hour),
				ImageURL:    "https://via.placeholder.com/400x200?text=Mars+Discovery",
				Category:    "science",
			},
		},
		"business": {
			{
				Title:       "Tech Stocks Rally as Market Shows Strong Growth",
				Description: "Technology sector leads market gains with strong quarterly earnings reports from major companies.",
				URL:         "https://example.com/tech-stocks",
				Source:      "Financial Times",
				PublishedAt: now.Add(-1 * time.Hour),
				ImageURL:    "https://via.placeholder.com/400x200?text=Stock+Market",
				Category:    "business",
			},
		},
	}

	articles, ok := samples[category]
	if !ok {
		articles = samples["technology"]
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}
