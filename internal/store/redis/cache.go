package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/basegeek/startpage/internal/store"
)

// Cache stores weather/news entries as JSON envelopes carrying their
// creation time. Storage-side key expiry (the retention window) is the only
// eviction; freshness inside the window is computed by the caller, which is
// what lets an expired-but-retained entry be served stale.
type Cache struct {
	client *redis.Client
}

// Get returns the entry for key, or store.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (store.Entry, error) {
	data, err := c.client.Get(ctx, CacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.Entry{}, store.ErrCacheMiss
		}
		return store.Entry{}, storageErr("get cache entry", err)
	}

	var entry store.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return store.Entry{}, fmt.Errorf("unmarshal cache entry %q: %w", key, err)
	}
	return entry, nil
}

// Put overwrites the entry for key, stamping it with the current time and
// resetting the retention window.
func (c *Cache) Put(ctx context.Context, key string, payload []byte) error {
	entry := store.Entry{Payload: payload, CreatedAt: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry %q: %w", key, err)
	}
	if err := c.client.Set(ctx, CacheKey(key), data, store.CacheRetention).Err(); err != nil {
		return storageErr("put cache entry", err)
	}
	return nil
}
