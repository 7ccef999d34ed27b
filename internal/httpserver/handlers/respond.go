package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/logger"
	"github.com/basegeek/startpage/internal/refresh"
)

// response is the JSON envelope every endpoint uses. Provenance flags are
// only emitted when set, so a plain success stays small.
type response struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     string     `json:"error,omitempty"`
	Details   []string   `json:"details,omitempty"`
	Message   string     `json:"message,omitempty"`
	Cached    bool       `json:"cached,omitempty"`
	Stale     bool       `json:"stale,omitempty"`
	Mock      bool       `json:"mock,omitempty"`
	Fallback  bool       `json:"fallback,omitempty"`
	Source    string     `json:"source,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func okMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Message: message})
}

func created(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusCreated, response{Success: true, Data: data, Message: message})
}

// withProvenance attaches the refresh provenance flags to a success body.
func withProvenance(data any, prov refresh.Provenance) response {
	body := response{
		Success: true,
		Data:    data,
		Cached:  prov.Cached,
		Stale:   prov.Stale,
		Mock:    prov.Mock,
		Source:  prov.Source,
	}
	if !prov.Timestamp.IsZero() {
		ts := prov.Timestamp
		body.Timestamp = &ts
	}
	return body
}

// fail maps a domain error onto an HTTP status. Unknown errors are 500 with
// message only; the cause is logged, and detail is exposed outside
// production.
func fail(w http.ResponseWriter, d deps.Deps, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Error:   "Validation error",
			Details: verr.Details(),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, response{Success: false, Error: "Not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, response{Success: false, Error: err.Error()})
	default:
		d.Logger.Error("request failed", logger.Error(err))
		body := response{Success: false, Error: "Internal server error"}
		if !d.Production {
			body.Details = []string{err.Error()}
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

// badRequest reports a malformed body or query without going through the
// validation taxonomy.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, response{Success: false, Error: msg})
}
