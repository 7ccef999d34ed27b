package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/basegeek/startpage/internal/domain"
)

// SettingsStore persists the settings singleton as one JSON document.
type SettingsStore struct {
	client *redis.Client
}

// Load returns the stored settings, or domain.ErrNotFound before first save.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	data, err := s.client.Get(ctx, KeySettings).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Settings{}, fmt.Errorf("settings: %w", domain.ErrNotFound)
		}
		return domain.Settings{}, storageErr("load settings", err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}

// Save overwrites the settings document.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.client.Set(ctx, KeySettings, data, 0).Err(); err != nil {
		return storageErr("save settings", err)
	}
	return nil
}
