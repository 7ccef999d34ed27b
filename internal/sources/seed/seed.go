package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/store"
)

// Seeder registers the services declared in a seed file. Services already
// present in the registry (by name) are left untouched, so the file can be
// re-applied on every startup without clobbering user edits.
type Seeder struct {
	loader *Loader
	store  store.ServiceStore
	logger logger.Logger
}

func NewSeeder(filePath string, st store.ServiceStore, log logger.Logger) *Seeder {
	return &Seeder{
		loader: NewLoader(filePath),
		store:  st,
		logger: log,
	}
}

// Apply loads the seed file and registers any services not yet known.
func (s *Seeder) Apply(ctx context.Context) error {
	f, err := s.loader.Load()
	if err != nil {
		return err
	}

	var added, skipped int
	for _, props := range f.Services {
		svc, err := mapService(props)
		if err != nil {
			s.logger.Warn("skipping invalid seed entry",
				logger.String("name", props.Name),
				logger.Error(err))
			continue
		}

		_, err = s.store.GetByName(ctx, svc.Name)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("seed lookup for %q: %w", svc.Name, err)
		}

		if err := s.store.Save(ctx, svc); err != nil {
			return fmt.Errorf("seed save for %q: %w", svc.Name, err)
		}
		added++
	}

	s.logger.Info("seed file applied",
		logger.Int("added", added),
		logger.Int("skipped", skipped))
	return nil
}

func mapService(props ServiceProps) (*domain.Service, error) {
	name := strings.TrimSpace(props.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	url := strings.TrimSpace(props.URL)
	if url == "" {
		return nil, errors.New("url is required")
	}

	svcType := domain.ServiceType(props.Type)
	if props.Type == "" {
		svcType = domain.TypeWeb
	}
	if !domain.ValidServiceType(svcType) {
		return nil, fmt.Errorf("unknown service type %q", props.Type)
	}

	threshold := props.AlertThreshold
	if threshold <= 0 {
		threshold = domain.DefaultAlertThreshold
	}
	interval := props.CheckInterval
	if interval <= 0 {
		interval = domain.DefaultCheckInterval
	}

	enabled := true
	if props.Enabled != nil {
		enabled = *props.Enabled
	}

	now := time.Now()
	return &domain.Service{
		ID:             uuid.NewString(),
		Name:           name,
		URL:            url,
		Type:           svcType,
		Description:    strings.TrimSpace(props.Description),
		Tags:           props.Tags,
		Enabled:        enabled,
		AlertThreshold: threshold,
		CheckInterval:  interval,
		Status:         domain.StatusUnknown,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
