package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/store"
)

func TestServiceStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	svc := &domain.Service{
		ID:        "id-1",
		Name:      "jellyfin",
		URL:       "http://jellyfin.local",
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, b.Services().Save(ctx, svc))

	got, err := b.Services().Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "jellyfin", got.Name)

	byName, err := b.Services().GetByName(ctx, "jellyfin")
	require.NoError(t, err)
	assert.Equal(t, "id-1", byName.ID)

	_, err = b.Services().Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceStoreReturnsClones(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	require.NoError(t, b.Services().Save(ctx, &domain.Service{ID: "a", Name: "a"}))

	got, err := b.Services().Get(ctx, "a")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := b.Services().Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Name, "mutating a returned service must not affect the store")
}

func TestServiceStoreListRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	base := time.Now()
	// Insert out of order; List must sort by CreatedAt.
	for _, s := range []struct {
		id     string
		offset time.Duration
	}{
		{"c", 2 * time.Second},
		{"a", 0},
		{"b", time.Second},
	} {
		require.NoError(t, b.Services().Save(ctx, &domain.Service{
			ID:        s.id,
			Name:      s.id,
			CreatedAt: base.Add(s.offset),
		}))
	}

	services, err := b.Services().List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "a", services[0].ID)
	assert.Equal(t, "b", services[1].ID)
	assert.Equal(t, "c", services[2].ID)
}

func TestServiceStoreDelete(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	require.NoError(t, b.Services().Save(ctx, &domain.Service{ID: "x", Name: "x"}))
	require.NoError(t, b.Services().Delete(ctx, "x"))

	_, err := b.Services().Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Services().Delete(ctx, "x"), domain.ErrNotFound)
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	_, err := b.Settings().Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	want := domain.DefaultSettings()
	want.Theme = "dark"
	require.NoError(t, b.Settings().Save(ctx, want))

	got, err := b.Settings().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}

func TestCachePutGetFresh(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	require.NoError(t, b.Cache().Put(ctx, "weather:austin:imperial", []byte(`{"t":72}`)))

	entry, err := b.Cache().Get(ctx, "weather:austin:imperial")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"t":72}`), entry.Payload)
	assert.True(t, entry.Fresh(time.Now(), store.WeatherTTL))
}

func TestCacheStaleStillReturned(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	now := time.Now()
	clock := now
	b.cache.SetClock(func() time.Time { return clock })

	require.NoError(t, b.Cache().Put(ctx, "news:technology", []byte(`[]`)))

	// Past the news TTL but inside the retention window: stale, not gone.
	clock = now.Add(store.NewsTTL + time.Minute)
	entry, err := b.Cache().Get(ctx, "news:technology")
	require.NoError(t, err)
	assert.False(t, entry.Fresh(clock, store.NewsTTL))
	assert.Equal(t, []byte(`[]`), entry.Payload)

	// Past the retention window: purged.
	clock = now.Add(store.CacheRetention + time.Minute)
	_, err = b.Cache().Get(ctx, "news:technology")
	assert.ErrorIs(t, err, store.ErrCacheMiss)
}

func TestCacheMiss(t *testing.T) {
	_, err := NewBackend().Cache().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrCacheMiss)
}

func TestCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	require.NoError(t, b.Cache().Put(ctx, "k", []byte(`1`)))
	require.NoError(t, b.Cache().Put(ctx, "k", []byte(`2`)))

	entry, err := b.Cache().Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), entry.Payload)
}
