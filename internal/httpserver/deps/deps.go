package deps

import (
	"time"

	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/refresh"
	"github.com/basegeek/startpage/internal/settings"
	"github.com/basegeek/startpage/internal/store"
)

// Deps is everything route handlers need, assembled once in app.New and
// passed to every registrar.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Backend      store.Backend         // selected at startup (redis or memory)
	Orchestrator *refresh.Orchestrator // cache-or-refresh engine
	Settings     *settings.Adapter     // settings singleton access

	DefaultLocation string        // weather location when the path omits one
	AllowedOrigins  []string      // CORS allow-list; empty allows any origin
	TrustProxy      bool          // resolve client IPs from proxy headers
	MonitorTrigger  chan struct{} // kicks the background monitor on demand
	Production      bool          // hide error detail in 500 responses
}
