package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/basegeek/startpage/internal/domain"
)

// defaultRSSFeeds maps categories to public feeds, tried in order.
// Categories without feeds skip this tier.
var defaultRSSFeeds = map[string][]string{
	"technology": {
		"https://feeds.arstechnica.com/arstechnica/index",
		"https://rss.cnn.com/rss/edition_technology.rss",
	},
	"science": {
		"https://www.sciencedaily.com/rss/all.xml",
		"https://rss.cnn.com/rss/edition_space.rss",
	},
	"business": {
		"https://rss.cnn.com/rss/money_latest.rss",
		"https://feeds.bloomberg.com/markets/news.rss",
	},
}

// RSSSource is the secondary news tier: public RSS feeds parsed with
// encoding/xml.
type RSSSource struct {
	feeds   map[string][]string
	client  *http.Client
	timeout time.Duration
}

// NewRSSSource builds the RSS tier. A nil feeds map uses the defaults.
func NewRSSSource(feeds map[string][]string, timeout time.Duration) *RSSSource {
	if feeds == nil {
		feeds = defaultRSSFeeds
	}
	return &RSSSource{
		feeds:   feeds,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (s *RSSSource) Name() string { return "rss" }

// rssDocument covers the subset of RSS 2.0 the feeds above emit.
type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// Fetch tries the category's feeds in order and returns articles from the
// first one that parses and yields items.
func (s *RSSSource) Fetch(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	urls, ok := s.feeds[category]
	if !ok {
		return nil, fmt.Errorf("rss: no feeds for category %q", category)
	}

	var lastErr error
	for _, feedURL := range urls {
		articles, err := s.fetchFeed(ctx, feedURL, category, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(articles) > 0 {
			return articles, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("rss: feeds for %q returned no items", category)
	}
	return nil, lastErr
}

func (s *RSSSource) fetchFeed(ctx context.Context, feedURL, category string, limit int) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("rss: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, wrapTransportErr("rss feed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusErr("rss feed", resp)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, parseErr("rss feed", err)
	}

	items := doc.Channel.Items
	if len(items) > limit {
		items = items[:limit]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, domain.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      doc.Channel.Title,
			PublishedAt: parsePubDate(item.PubDate),
			Category:    category,
		})
	}
	return articles, nil
}

// parsePubDate accepts the date layouts seen across real-world feeds.
func parsePubDate(s string) time.Time {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
