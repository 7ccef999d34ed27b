package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/basegeek/startpage/internal/httpserver/deps"
)

// GetSettings returns the settings singleton, creating defaults on first
// access. Fallback=true discloses that the durable store was unreachable.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Settings.Get(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, response{Success: true, Data: res.Settings, Fallback: res.Fallback})
	}
}

// UpdateSettings applies a validated partial update.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		res, err := d.Settings.Update(r.Context(), patch)
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, response{
			Success:  true,
			Data:     res.Settings,
			Message:  "Settings updated successfully",
			Fallback: res.Fallback,
		})
	}
}

// ResetSettings restores the documented defaults.
func ResetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Settings.Reset(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, response{
			Success:  true,
			Data:     res.Settings,
			Message:  "Settings reset to defaults",
			Fallback: res.Fallback,
		})
	}
}
