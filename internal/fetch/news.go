package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
)

// DefaultNewsAPIBaseURL is the NewsAPI top-headlines root.
const DefaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsSource is one tier of the news fallback chain.
type NewsSource interface {
	// Name identifies the tier in response metadata and logs.
	Name() string
	Fetch(ctx context.Context, category string, limit int) ([]domain.Article, error)
}

// NewsChain tries its sources in priority order and returns the first
// non-empty result together with the name of the tier that served it.
type NewsChain struct {
	sources []NewsSource
	log     logger.Logger
}

// NewNewsChain builds a chain over the given sources, tried front to back.
func NewNewsChain(log logger.Logger, sources ...NewsSource) *NewsChain {
	return &NewsChain{sources: sources, log: log}
}

// Fetch walks the chain. A tier that errors or returns nothing hands off to
// the next one; if every tier fails the last error is returned.
func (c *NewsChain) Fetch(ctx context.Context, category string, limit int) ([]domain.Article, string, error) {
	var lastErr error
	for _, src := range c.sources {
		articles, err := src.Fetch(ctx, category, limit)
		if err != nil {
			lastErr = err
			c.log.Debug("news source failed, trying next tier",
				logger.String("source", src.Name()),
				logger.Error(err))
			continue
		}
		if len(articles) == 0 {
			continue
		}
		return articles, src.Name(), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no news source produced articles for %q", category)
	}
	return nil, "", lastErr
}

// NewsAPISource is the primary tier: newsapi.org top headlines.
type NewsAPISource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewNewsAPISource builds the NewsAPI tier. With an empty key every fetch
// fails with ErrNotConfigured, pushing the chain to the next tier.
func NewNewsAPISource(apiKey, baseURL string, timeout time.Duration) *NewsAPISource {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	return &NewsAPISource{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (s *NewsAPISource) Fetch(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("category", category)
	q.Set("country", "us")
	q.Set("apiKey", s.apiKey)
	q.Set("pageSize", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/top-headlines?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("news: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrapTransportErr("news headlines", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusErr("news headlines", resp)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, parseErr("news headlines", err)
	}

	articles := make([]domain.Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, domain.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
			ImageURL:    a.URLToImage,
			Category:    category,
		})
	}
	return articles, nil
}
