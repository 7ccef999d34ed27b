package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":4000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, must cover upstream fetches

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Upstream providers. Empty keys switch the matching provider to mock data.
	WeatherAPIKey   string
	NewsAPIKey      string
	DefaultLocation string
	UpstreamTimeout time.Duration

	// Background monitoring
	MonitorInterval time.Duration // periodic health-check sweep
	MonitorFanout   int           // max concurrent probes per sweep
	SeedFile        string        // optional services.yaml loaded at startup

	// Redis. When unreachable the app falls back to in-memory storage.
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total retry window at startup
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on the retry backoff
	RedisPingTimeout    time.Duration

	AllowedOrigins  []string
	TrustProxy      bool
	RateLimitBurst  int
	RateLimitPerMin int

	Production bool
}

func Load() *Config {
	cfg := &Config{
		ListenAddr:      getenv("STARTPAGE_LISTEN_ADDR", ":4000"),
		ShutdownTimeout: mustDuration("STARTPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STARTPAGE_REQUEST_TIMEOUT", 30*time.Second),

		LogLevel:  getenv("STARTPAGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STARTPAGE_PRETTY_LOG", true),

		WeatherAPIKey:   getenv("STARTPAGE_WEATHER_API_KEY", ""),
		NewsAPIKey:      getenv("STARTPAGE_NEWS_API_KEY", ""),
		DefaultLocation: getenv("STARTPAGE_DEFAULT_LOCATION", "Arkadelphia, AR 71923"),
		UpstreamTimeout: mustDuration("STARTPAGE_UPSTREAM_TIMEOUT", 10*time.Second),

		MonitorInterval: mustDuration("STARTPAGE_MONITOR_INTERVAL", 5*time.Minute),
		MonitorFanout:   getenvInt("STARTPAGE_MONITOR_FANOUT", 16),
		SeedFile:        getenv("STARTPAGE_SEED_FILE", ""),

		RedisAddr:           getenv("STARTPAGE_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("STARTPAGE_REDIS_USERNAME", ""),
		RedisPassword:       getenv("STARTPAGE_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("STARTPAGE_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 15*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),

		AllowedOrigins:  splitAndTrim(getenv("STARTPAGE_ALLOWED_ORIGINS", "")),
		TrustProxy:      mustBool("STARTPAGE_TRUST_PROXY", false),
		RateLimitBurst:  getenvInt("STARTPAGE_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("STARTPAGE_RATE_LIMIT_PER_MIN", 120),

		Production: mustBool("STARTPAGE_PRODUCTION", false),
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.WeatherAPIKey != "" {
			cfgCopy.WeatherAPIKey = "***REDACTED***"
		}
		if cfgCopy.NewsAPIKey != "" {
			cfgCopy.NewsAPIKey = "***REDACTED***"
		}
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
