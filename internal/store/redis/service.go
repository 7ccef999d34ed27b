package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/basegeek/startpage/internal/domain"
)

// ServiceStore persists monitored services in redis. Each service lives at
// its own key; a set holds all IDs and a hash indexes name -> ID for the
// uniqueness check.
type ServiceStore struct {
	client *redis.Client
}

// Save upserts a service document and its indexes in one pipeline.
func (s *ServiceStore) Save(ctx context.Context, svc *domain.Service) error {
	data, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("marshal service %s: %w", svc.ID, err)
	}

	// A rename must drop the old name from the index.
	var oldName string
	if prev, err := s.Get(ctx, svc.ID); err == nil && prev.Name != svc.Name {
		oldName = prev.Name
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ServiceKey(svc.ID), data, 0)
	pipe.SAdd(ctx, KeyAllServices, svc.ID)
	pipe.HSet(ctx, KeyServiceNames, svc.Name, svc.ID)
	if oldName != "" {
		pipe.HDel(ctx, KeyServiceNames, oldName)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storageErr("save service", err)
	}
	return nil
}

// Get retrieves a service by ID.
func (s *ServiceStore) Get(ctx context.Context, id string) (*domain.Service, error) {
	data, err := s.client.Get(ctx, ServiceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("service %s: %w", id, domain.ErrNotFound)
		}
		return nil, storageErr("get service", err)
	}

	var svc domain.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("unmarshal service %s: %w", id, err)
	}
	return &svc, nil
}

// GetByName resolves a service through the name index.
func (s *ServiceStore) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	id, err := s.client.HGet(ctx, KeyServiceNames, name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("service %q: %w", name, domain.ErrNotFound)
		}
		return nil, storageErr("get service by name", err)
	}
	return s.Get(ctx, id)
}

// List returns every service in registration order (CreatedAt ascending).
func (s *ServiceStore) List(ctx context.Context) ([]*domain.Service, error) {
	ids, err := s.client.SMembers(ctx, KeyAllServices).Result()
	if err != nil {
		return nil, storageErr("list services", err)
	}

	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Index entry without a document; skip it.
				continue
			}
			return nil, err
		}
		services = append(services, svc)
	}

	// The ID set is unordered; registration order comes from CreatedAt.
	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}

// Delete removes a service and its index entries.
func (s *ServiceStore) Delete(ctx context.Context, id string) error {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ServiceKey(id))
	pipe.SRem(ctx, KeyAllServices, id)
	pipe.HDel(ctx, KeyServiceNames, svc.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return storageErr("delete service", err)
	}
	return nil
}
