package scheduler

import (
	"context"
	"time"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/refresh"
)

// Monitor runs the health-check sweep on a fixed interval. A manual trigger
// channel lets HTTP handlers force an immediate sweep.
type Monitor struct {
	orch     *refresh.Orchestrator
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	trigger  chan struct{}
}

func NewMonitor(orch *refresh.Orchestrator, log logger.Logger, interval time.Duration, trigger chan struct{}) *Monitor {
	return &Monitor{
		orch:     orch,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		trigger:  trigger,
	}
}

// Start sweeps once immediately, then periodically until Stop or ctx cancel.
func (m *Monitor) Start(ctx context.Context) error {
	m.sweep(ctx)

	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep(ctx)
			case <-m.trigger:
				m.logger.Info("manual health sweep triggered")
				m.sweep(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitor loop.
func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) sweep(ctx context.Context) {
	start := time.Now()
	results, err := m.orch.CheckAll(ctx)
	if err != nil {
		m.logger.Error("health sweep failed", logger.Error(err))
		return
	}

	var online, warning, offline int
	for _, r := range results {
		switch r.Status {
		case domain.StatusOnline:
			online++
		case domain.StatusWarning:
			warning++
		case domain.StatusOffline:
			offline++
		}
	}

	m.logger.Info("health sweep complete",
		logger.Int("services", len(results)),
		logger.Int("online", online),
		logger.Int("warning", warning),
		logger.Int("offline", offline),
		logger.Duration("duration", time.Since(start)))
}
