package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/fetch"
	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/httpserver/routes"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/refresh"
	"github.com/basegeek/startpage/internal/settings"
	"github.com/basegeek/startpage/internal/store/memory"
)

type fakeWeather struct {
	calls     int
	lastUnits domain.Units
}

func (f *fakeWeather) Fetch(_ context.Context, location string, units domain.Units) (*domain.Weather, error) {
	f.calls++
	f.lastUnits = units
	return &domain.Weather{Location: location, Temperature: 72, Condition: "Clear"}, nil
}

type fakeNews struct{}

func (fakeNews) Fetch(_ context.Context, category string, limit int) ([]domain.Article, string, error) {
	return []domain.Article{{Title: "headline", Category: category}}, "newsapi", nil
}

type fakePinger struct{ result fetch.PingResult }

func (f *fakePinger) Ping(context.Context, string, time.Duration) fetch.PingResult {
	return f.result
}

type harness struct {
	router  chi.Router
	backend *memory.Backend
	weather *fakeWeather
	pinger  *fakePinger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := memory.NewBackend()
	weather := &fakeWeather{}
	pinger := &fakePinger{result: fetch.PingResult{Latency: 42, StatusCode: 200}}

	log := logger.NewNop()
	orch := refresh.New(backend.Cache(), backend.Services(), weather, fakeNews{}, pinger, log, refresh.Options{})

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Version:         "test",
		GoVersion:       "go-test",
		TimeNow:         time.Now,
		Backend:         backend,
		Orchestrator:    orch,
		Settings:        settings.New(backend.Settings(), memory.NewBackend().Settings(), log),
		DefaultLocation: "Arkadelphia, AR 71923",
		MonitorTrigger:  make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	return &harness{router: r, backend: backend, weather: weather, pinger: pinger}
}

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    string          `json:"error"`
	Details  []string        `json:"details"`
	Message  string          `json:"message"`
	Cached   bool            `json:"cached"`
	Stale    bool            `json:"stale"`
	Mock     bool            `json:"mock"`
	Fallback bool            `json:"fallback"`
	Source   string          `json:"source"`
}

func (h *harness) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (h *harness) createService(t *testing.T, name, url string) domain.Service {
	t.Helper()
	rec, env := h.do(t, http.MethodPost, "/api/services", map[string]any{"name": name, "url": url})
	require.Equal(t, http.StatusCreated, rec.Code)
	var svc domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	return svc
}

func TestHealthEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["storage"])
	assert.Equal(t, "test", body["version"])
}

func TestCreateServiceRunsInitialCheck(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodPost, "/api/services", map[string]any{
		"name": "Router", "url": "http://192.168.1.1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Service added successfully", env.Message)

	var svc domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, domain.StatusOnline, svc.Status)
	assert.Equal(t, int64(42), svc.ResponseTime)
	assert.Equal(t, domain.DefaultAlertThreshold, svc.AlertThreshold)
	assert.Equal(t, domain.TypeWeb, svc.Type)
}

func TestCreateServiceValidation(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodPost, "/api/services", map[string]any{
		"name": "", "url": "not a url", "type": "mainframe",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation error", env.Error)
	assert.Len(t, env.Details, 3)
}

func TestCreateServiceDuplicateName(t *testing.T) {
	h := newHarness(t)
	h.createService(t, "Router", "http://192.168.1.1")

	rec, env := h.do(t, http.MethodPost, "/api/services", map[string]any{
		"name": "Router", "url": "http://192.168.1.2",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already exists")
}

func TestListServicesSortedAndEnabledOnly(t *testing.T) {
	h := newHarness(t)
	h.createService(t, "Zebra", "http://10.0.0.2")
	h.createService(t, "Alpha", "http://10.0.0.1")
	disabled := h.createService(t, "Hidden", "http://10.0.0.3")

	rec, env := h.do(t, http.MethodPut, "/api/services/"+disabled.ID, map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = h.do(t, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zebra", list[1].Name)
}

func TestServicesStatusAggregation(t *testing.T) {
	h := newHarness(t)
	h.createService(t, "One", "http://10.0.0.1")
	h.createService(t, "Two", "http://10.0.0.2")

	rec, env := h.do(t, http.MethodGet, "/api/services/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "One", rows[0]["service"])
	assert.Equal(t, "online", rows[0]["status"])
}

func TestUpdateService(t *testing.T) {
	h := newHarness(t)
	svc := h.createService(t, "Router", "http://192.168.1.1")

	rec, env := h.do(t, http.MethodPut, "/api/services/"+svc.ID, map[string]any{
		"name": "Gateway", "alertThreshold": 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Gateway", updated.Name)
	assert.Equal(t, 1000, updated.AlertThreshold)
	assert.Equal(t, svc.URL, updated.URL)
}

func TestUpdateServiceNotFound(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodPut, "/api/services/no-such-id", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateServiceRenameConflict(t *testing.T) {
	h := newHarness(t)
	h.createService(t, "Router", "http://192.168.1.1")
	other := h.createService(t, "Plex", "http://192.168.1.50")

	rec, _ := h.do(t, http.MethodPut, "/api/services/"+other.ID, map[string]any{"name": "Router"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteService(t *testing.T) {
	h := newHarness(t)
	svc := h.createService(t, "Router", "http://192.168.1.1")

	rec, env := h.do(t, http.MethodDelete, "/api/services/"+svc.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service deleted successfully", env.Message)

	rec, _ = h.do(t, http.MethodDelete, "/api/services/"+svc.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckServiceOnDemand(t *testing.T) {
	h := newHarness(t)
	svc := h.createService(t, "Router", "http://192.168.1.1")

	h.pinger.result = fetch.PingResult{Latency: 80, StatusCode: 503}

	rec, env := h.do(t, http.MethodPost, "/api/services/"+svc.ID+"/check", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "Router", res["service"])
	assert.Equal(t, "warning", res["status"])
}

func TestWeatherProvenanceFlow(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/weather", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Cached)

	var w domain.Weather
	require.NoError(t, json.Unmarshal(env.Data, &w))
	assert.Equal(t, "Arkadelphia, AR 71923", w.Location)

	// Second request is served from cache without touching upstream.
	rec, env = h.do(t, http.MethodGet, "/api/weather", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Cached)
	assert.False(t, env.Stale)
	assert.Equal(t, 1, h.weather.calls)
}

func TestWeatherCustomLocationAndUnits(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/weather/Portland?units=metric", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var w domain.Weather
	require.NoError(t, json.Unmarshal(env.Data, &w))
	assert.Equal(t, "Portland", w.Location)
	assert.Equal(t, domain.UnitsMetric, h.weather.lastUnits)

	rec, _ = h.do(t, http.MethodGet, "/api/weather?units=kelvin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsEndpoint(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/news", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "newsapi", env.Source)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(env.Data, &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "technology", articles[0].Category)

	rec, _ = h.do(t, http.MethodGet, "/api/news?category=astrology", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = h.do(t, http.MethodGet, "/api/news?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsCategoriesList(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/news/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []domain.NewsCategory
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.Len(t, cats, 6)
	assert.Equal(t, "technology", cats[0].ID)
}

func TestSettingsLifecycle(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var s domain.Settings
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "auto", s.Theme)

	rec, env = h.do(t, http.MethodPut, "/api/settings", map[string]any{"theme": "dark"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "dark", s.Theme)

	rec, env = h.do(t, http.MethodPut, "/api/settings", map[string]any{"theme": "neon"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation error", env.Error)

	rec, env = h.do(t, http.MethodDelete, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "auto", s.Theme)
}

func TestTriggerMonitor(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodPost, "/api/services/monitor", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, env.Success)

	// Nothing drains the trigger here, so a second kick is rejected.
	rec, env = h.do(t, http.MethodPost, "/api/services/monitor", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, env.Success)
}

func TestInvalidJSONBody(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/services", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
