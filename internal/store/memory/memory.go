// Package memory is the in-process storage backend. It backs the whole
// application when redis is unreachable at startup and serves as the
// failover target for settings reads when redis drops later. Everything is
// guarded by per-store RWMutexes; each critical section is a single map
// operation.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/store"
)

// Backend implements store.Backend entirely in memory.
type Backend struct {
	services *ServiceStore
	settings *SettingsStore
	cache    *Cache
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{
		services: &ServiceStore{byID: make(map[string]*domain.Service)},
		settings: &SettingsStore{},
		cache:    &Cache{entries: make(map[string]store.Entry), now: time.Now},
	}
}

func (b *Backend) Services() store.ServiceStore  { return b.services }
func (b *Backend) Settings() store.SettingsStore { return b.settings }
func (b *Backend) Cache() store.Cache            { return b.cache }
func (b *Backend) Kind() string                  { return "memory" }

// ServiceStore keeps the registry in a map keyed by ID.
type ServiceStore struct {
	mu   sync.RWMutex
	byID map[string]*domain.Service
}

func (s *ServiceStore) Save(_ context.Context, svc *domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *svc
	s.byID[svc.ID] = &clone
	return nil
}

func (s *ServiceStore) Get(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, domain.ErrNotFound)
	}
	clone := *svc
	return &clone, nil
}

func (s *ServiceStore) GetByName(_ context.Context, name string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, svc := range s.byID {
		if svc.Name == name {
			clone := *svc
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("service %q: %w", name, domain.ErrNotFound)
}

func (s *ServiceStore) List(_ context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*domain.Service, 0, len(s.byID))
	for _, svc := range s.byID {
		clone := *svc
		services = append(services, &clone)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}

func (s *ServiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("service %s: %w", id, domain.ErrNotFound)
	}
	delete(s.byID, id)
	return nil
}

// SettingsStore holds the singleton behind a mutex.
type SettingsStore struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

func (s *SettingsStore) Load(_ context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return domain.Settings{}, fmt.Errorf("settings: %w", domain.ErrNotFound)
	}
	return *s.settings, nil
}

func (s *SettingsStore) Save(_ context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = &settings
	return nil
}

// Cache is the in-memory TTL cache. Entries past the retention window are
// dropped lazily on read, mirroring the storage-side expiry of the redis
// backend.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]store.Entry
	now     func() time.Time
}

// SetClock replaces the cache's time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Cache) Get(_ context.Context, key string) (store.Entry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		return store.Entry{}, store.ErrCacheMiss
	}
	if entry.Age(now) >= store.CacheRetention {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return store.Entry{}, store.ErrCacheMiss
	}
	return entry, nil
}

func (c *Cache) Put(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = store.Entry{Payload: payload, CreatedAt: c.now()}
	return nil
}
