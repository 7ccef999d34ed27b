// Package refresh decides, per request, between serving cached data,
// refreshing from upstream, and degrading to stale or static data. It is the
// only place upstream failures are handled; handlers above it always get a
// servable payload with provenance flags.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/fetch"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/store"
)

// WeatherFetcher is the weather upstream, satisfied by *fetch.WeatherClient.
type WeatherFetcher interface {
	Fetch(ctx context.Context, location string, units domain.Units) (*domain.Weather, error)
}

// NewsFetcher is the news provider chain, satisfied by *fetch.NewsChain.
type NewsFetcher interface {
	Fetch(ctx context.Context, category string, limit int) ([]domain.Article, string, error)
}

// Pinger probes monitored services, satisfied by *fetch.Pinger.
type Pinger interface {
	Ping(ctx context.Context, url string, timeout time.Duration) fetch.PingResult
}

// Provenance discloses where a response's data came from. Exactly one
// lineage applies: fresh fetch (all false), fresh-from-cache (Cached),
// stale-from-cache (Cached+Stale), or static fallback (Mock).
type Provenance struct {
	Cached    bool
	Stale     bool
	Mock      bool
	Source    string    // which upstream tier produced the data, if any
	Timestamp time.Time // cache entry creation time, zero for fresh fetches
}

// Orchestrator owns the cache-or-refresh control flow for all three data
// domains.
type Orchestrator struct {
	cache    store.Cache
	services store.ServiceStore
	weather  WeatherFetcher
	news     NewsFetcher
	pinger   Pinger
	log      logger.Logger
	now      func() time.Time
	fanout   int // max concurrent service checks
}

// Options tunes an Orchestrator beyond its required collaborators.
type Options struct {
	// Fanout bounds concurrent service checks. Zero means 16.
	Fanout int
	// Now overrides the clock. Zero value means time.Now.
	Now func() time.Time
}

// New wires an orchestrator.
func New(cache store.Cache, services store.ServiceStore, weather WeatherFetcher, news NewsFetcher, pinger Pinger, log logger.Logger, opts Options) *Orchestrator {
	if opts.Fanout <= 0 {
		opts.Fanout = 16
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{
		cache:    cache,
		services: services,
		weather:  weather,
		news:     news,
		pinger:   pinger,
		log:      log,
		now:      opts.Now,
		fanout:   opts.Fanout,
	}
}

// WeatherResult is a weather payload plus its provenance.
type WeatherResult struct {
	Weather    *domain.Weather
	Provenance Provenance
}

// Weather serves current conditions for a location: fresh cache entry if one
// exists, otherwise a provider fetch, otherwise stale cache, otherwise the
// static sample payload. Never fails.
func (o *Orchestrator) Weather(ctx context.Context, location string, units domain.Units) WeatherResult {
	key := store.CacheKeyWeather(location, string(units))

	var cached domain.Weather
	weather, prov := resolve(o, ctx, key, store.WeatherTTL, &cached,
		func(ctx context.Context) (*domain.Weather, error) {
			return o.weather.Fetch(ctx, location, units)
		},
		func() *domain.Weather {
			return fetch.MockWeather(location, units)
		},
	)
	return WeatherResult{Weather: weather, Provenance: prov}
}

// NewsResult is an article list plus its provenance.
type NewsResult struct {
	Articles   []domain.Article
	Provenance Provenance
}

// newsPayload is what gets cached for a category: the articles plus the tier
// that produced them, so stale responses can still name their source.
type newsPayload struct {
	Articles []domain.Article `json:"articles"`
	Source   string           `json:"source"`
}

// News serves articles for a category with the same degradation ladder as
// Weather. The cache key ignores limit; the slice is capped after lookup so
// different limits share one upstream fetch.
func (o *Orchestrator) News(ctx context.Context, category string, limit int) NewsResult {
	key := store.CacheKeyNews(category)

	var cached newsPayload
	payload, prov := resolve(o, ctx, key, store.NewsTTL, &cached,
		func(ctx context.Context) (*newsPayload, error) {
			articles, source, err := o.news.Fetch(ctx, category, limit)
			if err != nil {
				return nil, err
			}
			return &newsPayload{Articles: articles, Source: source}, nil
		},
		func() *newsPayload {
			return &newsPayload{Articles: fetch.MockNews(category, limit), Source: fetch.MockSourceName}
		},
	)

	articles := payload.Articles
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if prov.Source == "" {
		prov.Source = payload.Source
	}
	return NewsResult{Articles: articles, Provenance: prov}
}

// resolve is the cache-check/fetch/fallback state machine shared by the
// weather and news paths. cachedOut is the unmarshal target for cache hits.
func resolve[T any](o *Orchestrator, ctx context.Context, key string, ttl time.Duration, cachedOut *T, fetchFn func(context.Context) (*T, error), mockFn func() *T) (*T, Provenance) {
	entry, cacheErr := o.cache.Get(ctx, key)
	haveEntry := cacheErr == nil
	if haveEntry {
		if err := json.Unmarshal(entry.Payload, cachedOut); err != nil {
			o.log.Warn("dropping undecodable cache entry",
				logger.String("key", key),
				logger.Error(err))
			haveEntry = false
		}
	} else if !errors.Is(cacheErr, store.ErrCacheMiss) {
		// Storage trouble reads like a miss; the fetch path still works.
		o.log.Warn("cache read failed",
			logger.String("key", key),
			logger.Error(cacheErr))
	}

	if haveEntry && entry.Fresh(o.now(), ttl) {
		return cachedOut, Provenance{Cached: true, Timestamp: entry.CreatedAt}
	}

	fetched, err := fetchFn(ctx)
	if err == nil {
		if data, merr := json.Marshal(fetched); merr == nil {
			if perr := o.cache.Put(ctx, key, data); perr != nil {
				o.log.Warn("cache write failed",
					logger.String("key", key),
					logger.Error(perr))
			}
		}
		return fetched, Provenance{}
	}

	o.log.Warn("upstream fetch failed",
		logger.String("key", key),
		logger.Error(err))

	if haveEntry {
		return cachedOut, Provenance{Cached: true, Stale: true, Timestamp: entry.CreatedAt}
	}
	return mockFn(), Provenance{Mock: true}
}
