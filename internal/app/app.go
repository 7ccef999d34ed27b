package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/basegeek/startpage/internal/config"
	"github.com/basegeek/startpage/internal/fetch"
	"github.com/basegeek/startpage/internal/httpserver"
	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/redis"
	"github.com/basegeek/startpage/internal/refresh"
	"github.com/basegeek/startpage/internal/scheduler"
	"github.com/basegeek/startpage/internal/settings"
	"github.com/basegeek/startpage/internal/sources/seed"
	"github.com/basegeek/startpage/internal/store"
	"github.com/basegeek/startpage/internal/store/memory"
	redisstore "github.com/basegeek/startpage/internal/store/redis"
	"github.com/basegeek/startpage/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	monitor     *scheduler.Monitor
	seeder      *seed.Seeder
}

func New() *App {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is preferred but not required: when it never answers within the
	// startup window, everything runs on the in-memory backend instead.
	var backend store.Backend
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, log)
	if err != nil {
		log.Warn("redis unavailable, running on in-memory storage",
			logger.Error(err))
		redisClient = nil
		backend = memory.NewBackend()
	} else {
		backend = redisstore.NewBackend(redisClient)
	}
	log.Info("storage backend selected", logger.String("kind", backend.Kind()))

	if cfg.WeatherAPIKey == "" {
		log.Warn("weather API key not set, serving mock weather data")
	}
	if cfg.NewsAPIKey == "" {
		log.Warn("news API key not set, headlines will come from RSS or mock data")
	}

	weather := fetch.NewWeatherClient(cfg.WeatherAPIKey, "", cfg.UpstreamTimeout)
	news := fetch.NewNewsChain(log,
		fetch.NewNewsAPISource(cfg.NewsAPIKey, "", cfg.UpstreamTimeout),
		fetch.NewRSSSource(nil, cfg.UpstreamTimeout),
		fetch.MockNewsSource{},
	)

	orch := refresh.New(backend.Cache(), backend.Services(), weather, news,
		fetch.NewPinger(), log, refresh.Options{Fanout: cfg.MonitorFanout})

	// Settings fall back to a process-local store when Redis degrades at
	// runtime, so preference writes survive within the process either way.
	settingsAdapter := settings.New(backend.Settings(), memory.NewBackend().Settings(), log)

	monitorTrigger := make(chan struct{}, 1)
	monitor := scheduler.NewMonitor(orch, log, cfg.MonitorInterval, monitorTrigger)

	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		seeder = seed.NewSeeder(cfg.SeedFile, backend.Services(), log)
	}

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		TimeNow:   time.Now,

		Backend:      backend,
		Orchestrator: orch,
		Settings:     settingsAdapter,

		DefaultLocation: cfg.DefaultLocation,
		AllowedOrigins:  cfg.AllowedOrigins,
		TrustProxy:      cfg.TrustProxy,
		MonitorTrigger:  monitorTrigger,
		Production:      cfg.Production,
	}

	server := httpserver.New(cfg, log, d)

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      server,
		redisClient: redisClient,
		monitor:     monitor,
		seeder:      seeder,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting startpage %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.seeder != nil {
		if err := a.seeder.Apply(ctx); err != nil {
			a.logger.Warn("failed to apply seed file", logger.Error(err))
		}
	}

	if err := a.monitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health monitor: %w", err)
	}
	a.logger.Info("health monitor started",
		logger.Duration("interval", a.cfg.MonitorInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.monitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("startpage stopped cleanly")
	return nil
}
