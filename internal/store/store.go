// Package store defines the storage contracts the rest of the application
// depends on. Two backends implement them: redis (durable) and memory
// (fallback when redis is unreachable). The choice is made once at startup;
// the settings adapter additionally fails over per request.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/basegeek/startpage/internal/domain"
)

// Domain TTLs. An entry older than its TTL is stale but still served when a
// refresh fails; actual removal is the storage layer's job (key expiry).
const (
	WeatherTTL = 30 * time.Minute
	NewsTTL    = 60 * time.Minute

	// CacheRetention is how long a cache entry is kept in storage after its
	// last write. It must exceed every domain TTL so stale entries survive
	// long enough to be served as fallbacks.
	CacheRetention = 24 * time.Hour
)

// ErrCacheMiss is returned by Cache.Get when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Entry is one immutable cached payload plus its creation time. Refreshing a
// key writes a new entry; entries are never mutated in place.
type Entry struct {
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// Age returns how long ago the entry was written.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// Fresh reports whether the entry is younger than ttl.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) < ttl
}

// Cache is a keyed TTL cache with last-write-wins upsert semantics.
// Freshness is the caller's concern (via Entry.Fresh); Get returns stale
// entries rather than hiding them.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// ServiceStore persists the monitored-service registry.
// List returns services in registration order (CreatedAt ascending).
type ServiceStore interface {
	Save(ctx context.Context, svc *domain.Service) error
	Get(ctx context.Context, id string) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// SettingsStore persists the settings singleton.
// Load returns domain.ErrNotFound when no settings have been saved yet.
type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}

// Backend bundles the three stores of one storage implementation.
type Backend interface {
	Services() ServiceStore
	Settings() SettingsStore
	Cache() Cache

	// Kind identifies the backend ("redis" or "memory") for logs and the
	// fallback flag on degraded responses.
	Kind() string
}
