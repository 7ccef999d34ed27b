package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/logger"
)

// ListServices returns enabled services sorted by name.
func ListServices(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := d.Backend.Services().List(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}

		enabled := make([]*domain.Service, 0, len(services))
		for _, svc := range services {
			if svc.Enabled {
				enabled = append(enabled, svc)
			}
		}
		sort.Slice(enabled, func(i, j int) bool {
			return enabled[i].Name < enabled[j].Name
		})

		ok(w, enabled)
	}
}

// ServicesStatus checks every enabled service concurrently and returns the
// per-service results in registration order.
func ServicesStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := d.Orchestrator.CheckAll(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		ts := d.TimeNow()
		writeJSON(w, http.StatusOK, response{Success: true, Data: results, Timestamp: &ts})
	}
}

type createServiceRequest struct {
	Name           string             `json:"name"`
	URL            string             `json:"url"`
	Type           domain.ServiceType `json:"type"`
	Description    string             `json:"description"`
	Tags           []string           `json:"tags"`
	AlertThreshold int                `json:"alertThreshold"`
	CheckInterval  int                `json:"checkInterval"`
}

// CreateService registers a service, runs its first health check
// synchronously, and returns the service with observed state populated.
func CreateService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req createServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		verr := domain.NewValidationError()
		if strings.TrimSpace(req.Name) == "" {
			verr.Add("name", "required")
		}
		if strings.TrimSpace(req.URL) == "" {
			verr.Add("url", "required")
		} else if _, err := url.ParseRequestURI(req.URL); err != nil {
			verr.Add("url", "must be a valid URL")
		}
		if req.Type != "" && !domain.ValidServiceType(req.Type) {
			verr.Add("type", "must be one of web, api, database, service")
		}
		if req.AlertThreshold < 0 {
			verr.Add("alertThreshold", "must be positive")
		}
		if req.CheckInterval < 0 {
			verr.Add("checkInterval", "must be positive")
		}
		if !verr.Empty() {
			fail(w, d, verr)
			return
		}

		if _, err := d.Backend.Services().GetByName(ctx, req.Name); err == nil {
			fail(w, d, fmt.Errorf("service with this name %w", domain.ErrConflict))
			return
		} else if !errors.Is(err, domain.ErrNotFound) {
			fail(w, d, err)
			return
		}

		now := d.TimeNow()
		svc := &domain.Service{
			ID:             uuid.NewString(),
			Name:           req.Name,
			URL:            req.URL,
			Type:           req.Type,
			Description:    req.Description,
			Tags:           req.Tags,
			Enabled:        true,
			AlertThreshold: req.AlertThreshold,
			CheckInterval:  req.CheckInterval,
			Status:         domain.StatusUnknown,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if svc.Type == "" {
			svc.Type = domain.TypeWeb
		}
		if svc.AlertThreshold == 0 {
			svc.AlertThreshold = domain.DefaultAlertThreshold
		}
		if svc.CheckInterval == 0 {
			svc.CheckInterval = domain.DefaultCheckInterval
		}

		if err := d.Backend.Services().Save(ctx, svc); err != nil {
			fail(w, d, err)
			return
		}

		// Initial check before responding, so the client sees a real status.
		if _, err := d.Orchestrator.CheckAndPersist(ctx, svc); err != nil {
			d.Logger.Warn("initial check persisted partially",
				logger.String("service", svc.Name),
				logger.Error(err))
		}

		created(w, svc, "Service added successfully")
	}
}

// UpdateService applies a partial update to a registered service.
// Observed state is not updatable through this endpoint.
func UpdateService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		var upd domain.ServiceUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		svc, err := d.Backend.Services().Get(ctx, id)
		if err != nil {
			fail(w, d, err)
			return
		}

		verr := domain.NewValidationError()
		if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
			verr.Add("name", "must not be empty")
		}
		if upd.URL != nil {
			if _, perr := url.ParseRequestURI(*upd.URL); perr != nil {
				verr.Add("url", "must be a valid URL")
			}
		}
		if upd.Type != nil && !domain.ValidServiceType(*upd.Type) {
			verr.Add("type", "must be one of web, api, database, service")
		}
		if upd.AlertThreshold != nil && *upd.AlertThreshold <= 0 {
			verr.Add("alertThreshold", "must be positive")
		}
		if upd.CheckInterval != nil && *upd.CheckInterval <= 0 {
			verr.Add("checkInterval", "must be positive")
		}
		if !verr.Empty() {
			fail(w, d, verr)
			return
		}

		if upd.Name != nil && *upd.Name != svc.Name {
			if _, err := d.Backend.Services().GetByName(ctx, *upd.Name); err == nil {
				fail(w, d, fmt.Errorf("service with this name %w", domain.ErrConflict))
				return
			} else if !errors.Is(err, domain.ErrNotFound) {
				fail(w, d, err)
				return
			}
			svc.Name = *upd.Name
		}
		if upd.URL != nil {
			svc.URL = *upd.URL
		}
		if upd.Type != nil {
			svc.Type = *upd.Type
		}
		if upd.Description != nil {
			svc.Description = *upd.Description
		}
		if upd.Tags != nil {
			svc.Tags = upd.Tags
		}
		if upd.Enabled != nil {
			svc.Enabled = *upd.Enabled
		}
		if upd.AlertThreshold != nil {
			svc.AlertThreshold = *upd.AlertThreshold
		}
		if upd.CheckInterval != nil {
			svc.CheckInterval = *upd.CheckInterval
		}
		svc.UpdatedAt = d.TimeNow()

		if err := d.Backend.Services().Save(ctx, svc); err != nil {
			fail(w, d, err)
			return
		}
		okMessage(w, svc, "Service updated successfully")
	}
}

// DeleteService removes a service from the registry.
func DeleteService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Backend.Services().Delete(r.Context(), id); err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true, Message: "Service deleted successfully"})
	}
}

// CheckService runs an on-demand health check for one service and persists
// the result.
func CheckService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		svc, err := d.Backend.Services().Get(ctx, id)
		if err != nil {
			fail(w, d, err)
			return
		}

		result, err := d.Orchestrator.CheckAndPersist(ctx, svc)
		if err != nil {
			fail(w, d, err)
			return
		}

		ok(w, struct {
			Service string `json:"service"`
			domain.CheckResult
		}{Service: svc.Name, CheckResult: result})
	}
}
