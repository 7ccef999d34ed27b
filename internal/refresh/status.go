package refresh

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
)

// ServiceStatus is one row of the aggregated status response.
type ServiceStatus struct {
	Service      string        `json:"service"`
	Status       domain.Status `json:"status"`
	ResponseTime int64         `json:"responseTime"`
	StatusCode   int           `json:"statusCode,omitempty"`
	Error        string        `json:"error,omitempty"`
	LastChecked  time.Time     `json:"lastChecked"`
}

// Check probes one service and classifies the outcome. Pure with respect to
// the registry: persisting the result is the caller's decision.
func (o *Orchestrator) Check(ctx context.Context, svc *domain.Service) domain.CheckResult {
	threshold := svc.AlertThreshold
	if threshold <= 0 {
		threshold = domain.DefaultAlertThreshold
	}

	res := o.pinger.Ping(ctx, svc.URL, time.Duration(threshold)*time.Millisecond)

	result := domain.CheckResult{
		Status:       domain.Classify(res.Latency, res.StatusCode, res.Err, threshold),
		ResponseTime: res.Latency,
		StatusCode:   res.StatusCode,
		CheckedAt:    o.now(),
	}
	if res.Err != nil {
		result.Error = res.Err.Error()
	}
	return result
}

// CheckAndPersist probes one service and writes the observed state back to
// the registry. The check result is returned even when persistence fails.
func (o *Orchestrator) CheckAndPersist(ctx context.Context, svc *domain.Service) (domain.CheckResult, error) {
	result := o.Check(ctx, svc)
	svc.ApplyCheck(result)
	if err := o.services.Save(ctx, svc); err != nil {
		return result, err
	}
	return result, nil
}

// CheckAll probes every enabled service concurrently and aggregates the
// outcomes in registration order. One service failing never affects a
// sibling's row; each result is persisted as soon as its check settles.
func (o *Orchestrator) CheckAll(ctx context.Context) ([]ServiceStatus, error) {
	services, err := o.services.List(ctx)
	if err != nil {
		return nil, err
	}

	enabled := services[:0]
	for _, svc := range services {
		if svc.Enabled {
			enabled = append(enabled, svc)
		}
	}

	results := make([]ServiceStatus, len(enabled))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.fanout)
	for i, svc := range enabled {
		i, svc := i, svc
		g.Go(func() error {
			check, perr := o.CheckAndPersist(gctx, svc)
			if perr != nil {
				o.log.Warn("failed to persist check result",
					logger.String("service", svc.Name),
					logger.Error(perr))
			}
			results[i] = ServiceStatus{
				Service:      svc.Name,
				Status:       check.Status,
				ResponseTime: check.ResponseTime,
				StatusCode:   check.StatusCode,
				Error:        check.Error,
				LastChecked:  check.CheckedAt,
			}
			// Always nil: a failed check is a classified result, not an
			// error, so the join never short-circuits.
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
