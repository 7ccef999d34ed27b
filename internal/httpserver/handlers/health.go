package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/basegeek/startpage/internal/httpserver/deps"
)

type healthResponse struct {
	Status        string    `json:"status"`
	UptimeSeconds float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version,omitempty"`
	Commit        string    `json:"commit,omitempty"`
	GoVersion     string    `json:"go_version,omitempty"`
	Storage       string    `json:"storage,omitempty"`
}

// Health is the liveness probe.
func Health(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:        "healthy",
			UptimeSeconds: time.Since(start).Seconds(),
			Timestamp:     d.TimeNow(),
			Version:       d.Version,
			Commit:        d.Commit,
			GoVersion:     d.GoVersion,
			Storage:       d.Backend.Kind(),
		})
	}
}
