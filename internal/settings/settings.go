// Package settings is the store adapter for the dashboard's settings
// singleton: defaults on first access, validated partial updates, reset, and
// failover to an in-memory backend when the durable store is unreachable.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/store"
)

// Adapter mediates all settings access. primary is the durable store;
// fallback keeps the endpoints functional when primary is down. Responses
// served from fallback carry Fallback=true.
type Adapter struct {
	primary  store.SettingsStore
	fallback store.SettingsStore
	log      logger.Logger
}

// Result is a settings object plus where it came from.
type Result struct {
	Settings domain.Settings
	Fallback bool
}

// New builds the adapter. fallback must never fail (in practice the memory
// store).
func New(primary, fallback store.SettingsStore, log logger.Logger) *Adapter {
	return &Adapter{primary: primary, fallback: fallback, log: log}
}

// Get returns the current settings, creating the defaults on first access.
func (a *Adapter) Get(ctx context.Context) (Result, error) {
	return a.load(ctx)
}

// Update validates a partial update, merges it onto the current settings,
// and persists the result. Every invalid field is reported, and unknown
// fields are rejected.
func (a *Adapter) Update(ctx context.Context, patch map[string]any) (Result, error) {
	if verr := validate(patch); !verr.Empty() {
		return Result{}, verr
	}

	current, err := a.load(ctx)
	if err != nil {
		return Result{}, err
	}

	merged := current.Settings
	apply(&merged, patch)

	return a.save(ctx, merged)
}

// Reset restores the documented defaults.
func (a *Adapter) Reset(ctx context.Context) (Result, error) {
	return a.save(ctx, domain.DefaultSettings())
}

// load reads from primary, seeding defaults when nothing is stored yet, and
// fails over to the fallback store when primary is unreachable.
func (a *Adapter) load(ctx context.Context) (Result, error) {
	s, err := a.primary.Load(ctx)
	switch {
	case err == nil:
		return Result{Settings: s}, nil

	case errors.Is(err, domain.ErrNotFound):
		defaults := domain.DefaultSettings()
		if serr := a.primary.Save(ctx, defaults); serr != nil {
			if errors.Is(serr, domain.ErrStorageUnavailable) {
				return a.loadFallback(ctx)
			}
			return Result{}, serr
		}
		return Result{Settings: defaults}, nil

	case errors.Is(err, domain.ErrStorageUnavailable):
		a.log.Warn("settings store unavailable, serving from memory", logger.Error(err))
		return a.loadFallback(ctx)

	default:
		return Result{}, err
	}
}

func (a *Adapter) loadFallback(ctx context.Context) (Result, error) {
	s, err := a.fallback.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s = domain.DefaultSettings()
		if serr := a.fallback.Save(ctx, s); serr != nil {
			return Result{}, serr
		}
		err = nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Settings: s, Fallback: true}, nil
}

func (a *Adapter) save(ctx context.Context, s domain.Settings) (Result, error) {
	if err := a.primary.Save(ctx, s); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			a.log.Warn("settings store unavailable, writing to memory", logger.Error(err))
			if ferr := a.fallback.Save(ctx, s); ferr != nil {
				return Result{}, ferr
			}
			return Result{Settings: s, Fallback: true}, nil
		}
		return Result{}, err
	}
	return Result{Settings: s}, nil
}

// enumerated option domains
var (
	themes       = []string{"auto", "light", "dark"}
	clockFormats = []string{"12h", "24h"}
	weatherUnits = []string{"fahrenheit", "celsius"}
	aiProviders  = []string{"basegeek", "openai", "anthropic", "local"}
)

// validate checks every field of a partial update against its domain and
// collects all failures.
func validate(patch map[string]any) *domain.ValidationError {
	verr := domain.NewValidationError()

	for field, value := range patch {
		switch field {
		case "theme":
			validateEnum(verr, field, value, themes)
		case "clockFormat":
			validateEnum(verr, field, value, clockFormats)
		case "weatherUnit":
			validateEnum(verr, field, value, weatherUnits)
		case "aiProvider":
			validateEnum(verr, field, value, aiProviders)
		case "weatherLocation":
			validateString(verr, field, value, 1, 100)
		case "aiModel":
			validateString(verr, field, value, 1, 50)
		case "backgroundRefresh":
			validateRange(verr, field, value, 10, 300)
		case "monitoringInterval":
			validateRange(verr, field, value, 30, 3600)
		case "notifications", "aiAssistant":
			if _, ok := value.(bool); !ok {
				verr.Add(field, "must be a boolean")
			}
		case "newsCategories":
			validateCategories(verr, field, value)
		case "dashboardLayout":
			validateLayout(verr, field, value)
		default:
			verr.Add(field, "unknown field")
		}
	}
	return verr
}

func validateEnum(verr *domain.ValidationError, field string, value any, allowed []string) {
	s, ok := value.(string)
	if !ok {
		verr.Add(field, "must be a string")
		return
	}
	for _, v := range allowed {
		if s == v {
			return
		}
	}
	verr.Add(field, fmt.Sprintf("must be one of %v", allowed))
}

func validateString(verr *domain.ValidationError, field string, value any, minLen, maxLen int) {
	s, ok := value.(string)
	if !ok {
		verr.Add(field, "must be a string")
		return
	}
	if len(s) < minLen || len(s) > maxLen {
		verr.Add(field, fmt.Sprintf("length must be between %d and %d", minLen, maxLen))
	}
}

func validateRange(verr *domain.ValidationError, field string, value any, minVal, maxVal int) {
	n, ok := asInt(value)
	if !ok {
		verr.Add(field, "must be a number")
		return
	}
	if n < minVal || n > maxVal {
		verr.Add(field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
}

func validateCategories(verr *domain.ValidationError, field string, value any) {
	list, ok := value.([]any)
	if !ok {
		verr.Add(field, "must be an array of category names")
		return
	}
	for _, item := range list {
		s, ok := item.(string)
		if !ok || !domain.ValidNewsCategory(s) {
			verr.Add(field, fmt.Sprintf("must be a subset of %v", domain.NewsCategories))
			return
		}
	}
}

func validateLayout(verr *domain.ValidationError, field string, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		verr.Add(field, "must be an object")
		return
	}
	for key, v := range obj {
		switch key {
		case "widgets":
			list, ok := v.([]any)
			if !ok {
				verr.Add(field+".widgets", "must be an array of strings")
				continue
			}
			for _, item := range list {
				if _, ok := item.(string); !ok {
					verr.Add(field+".widgets", "must be an array of strings")
					break
				}
			}
		case "columns":
			validateRange(verr, field+".columns", v, 1, 6)
		default:
			verr.Add(field+"."+key, "unknown field")
		}
	}
}

// apply merges a validated patch onto s. Absent fields stay untouched.
func apply(s *domain.Settings, patch map[string]any) {
	for field, value := range patch {
		switch field {
		case "theme":
			s.Theme = value.(string)
		case "clockFormat":
			s.ClockFormat = value.(string)
		case "weatherLocation":
			s.WeatherLocation = value.(string)
		case "weatherUnit":
			s.WeatherUnit = value.(string)
		case "backgroundRefresh":
			s.BackgroundRefresh, _ = asInt(value)
		case "notifications":
			s.Notifications = value.(bool)
		case "aiAssistant":
			s.AIAssistant = value.(bool)
		case "monitoringInterval":
			s.MonitoringInterval, _ = asInt(value)
		case "aiProvider":
			s.AIProvider = value.(string)
		case "aiModel":
			s.AIModel = value.(string)
		case "newsCategories":
			list := value.([]any)
			categories := make([]string, 0, len(list))
			for _, item := range list {
				categories = append(categories, item.(string))
			}
			s.NewsCategories = categories
		case "dashboardLayout":
			obj := value.(map[string]any)
			if v, ok := obj["widgets"]; ok {
				list := v.([]any)
				widgets := make([]string, 0, len(list))
				for _, item := range list {
					widgets = append(widgets, item.(string))
				}
				s.DashboardLayout.Widgets = widgets
			}
			if v, ok := obj["columns"]; ok {
				s.DashboardLayout.Columns, _ = asInt(v)
			}
		}
	}
}

// asInt accepts JSON numbers (float64 after decoding) and Go ints, rejecting
// non-integral values.
func asInt(value any) (int, bool) {
	switch n := value.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

