package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", getenv("TEST_STR", "def"))
	assert.Equal(t, "def", getenv("TEST_STR_MISSING", "def"))
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")
	assert.Equal(t, 42, getenvInt("TEST_INT", 7))
	assert.Equal(t, 7, getenvInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, getenvInt("TEST_INT_MISSING", 7))
}

func TestMustBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yep")
	assert.True(t, mustBool("TEST_BOOL", false))
	assert.False(t, mustBool("TEST_BOOL_BAD", false))
	assert.True(t, mustBool("TEST_BOOL_MISSING", true))
}

func TestMustDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	t.Setenv("TEST_DUR_BAD", "ninety")
	assert.Equal(t, 90*time.Second, mustDuration("TEST_DUR", time.Minute))
	assert.Equal(t, time.Minute, mustDuration("TEST_DUR_BAD", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{"spaces and quotes", ` "http://a" , 'http://b' `, []string{"http://a", "http://b"}},
		{"trailing comma", "http://a,", []string{"http://a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.input))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":4000", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.MonitorInterval)
	assert.Equal(t, "Arkadelphia, AR 71923", cfg.DefaultLocation)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STARTPAGE_LISTEN_ADDR", ":9999")
	t.Setenv("STARTPAGE_MONITOR_INTERVAL", "30s")
	t.Setenv("STARTPAGE_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.MonitorInterval)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}
