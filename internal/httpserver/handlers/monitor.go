package handlers

import (
	"net/http"

	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/logger"
)

// TriggerMonitor kicks the background monitor into an immediate sweep. The
// trigger channel has capacity one; a pending sweep answers 429.
func TriggerMonitor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.MonitorTrigger <- struct{}{}:
			d.Logger.Info("manual health sweep triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, response{Success: true, Message: "Health sweep triggered"})
		default:
			writeJSON(w, http.StatusTooManyRequests, response{Success: false, Error: "Sweep already in progress"})
		}
	}
}
