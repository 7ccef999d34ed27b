// Package redis is the durable storage backend. Service documents and the
// settings singleton are stored as JSON values; cache entries carry a
// storage-side expiry so old data is purged without any application sweep.
package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/store"
)

// Backend implements store.Backend on top of a redis client.
type Backend struct {
	services *ServiceStore
	settings *SettingsStore
	cache    *Cache
}

// NewBackend wires the three redis-backed stores around one shared client.
func NewBackend(client *redis.Client) *Backend {
	return &Backend{
		services: &ServiceStore{client: client},
		settings: &SettingsStore{client: client},
		cache:    &Cache{client: client},
	}
}

func (b *Backend) Services() store.ServiceStore { return b.services }
func (b *Backend) Settings() store.SettingsStore { return b.settings }
func (b *Backend) Cache() store.Cache           { return b.cache }
func (b *Backend) Kind() string                 { return "redis" }

// storageErr wraps a redis transport failure so callers can detect it with
// errors.Is(err, domain.ErrStorageUnavailable) and degrade.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}
