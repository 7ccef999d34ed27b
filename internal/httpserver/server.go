package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/basegeek/startpage/internal/config"
	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/httpserver/mw"
	"github.com/basegeek/startpage/internal/httpserver/routes"
	"github.com/basegeek/startpage/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New builds the HTTP server: router, middlewares, route registration.
func New(cfg *config.Config, log logger.Logger, d deps.Deps) *Server {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	// Upstream fetches (weather, news, health probes) can take several
	// seconds each, so the per-request budget has to cover them.
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(mw.Log(log))
	r.Use(mw.CORS(cfg.AllowedOrigins))
	r.Use(mw.RateLimit(mw.RateLimitConfig{
		Burst:        cfg.RateLimitBurst,
		RefillPerMin: cfg.RateLimitPerMin,
		MaxEntries:   4096,
		TrustProxy:   cfg.TrustProxy,
	}))

	routes.RegisterAll(r, d)

	s := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{http: s, logger: log}
}

// Start runs the HTTP server and blocks until error or shutdown.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
