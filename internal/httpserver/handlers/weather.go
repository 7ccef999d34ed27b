package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/basegeek/startpage/internal/domain"
	"github.com/basegeek/startpage/internal/httpserver/deps"
)

// Weather serves cached-or-fresh current conditions for a location. The
// orchestrator never fails: degraded responses carry provenance flags
// instead of errors.
func Weather(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := chi.URLParam(r, "location")
		if location == "" {
			location = d.DefaultLocation
		}

		units := domain.UnitsImperial
		switch r.URL.Query().Get("units") {
		case "", "imperial":
		case "metric":
			units = domain.UnitsMetric
		default:
			badRequest(w, "units must be imperial or metric")
			return
		}

		res := d.Orchestrator.Weather(r.Context(), location, units)
		writeJSON(w, http.StatusOK, withProvenance(res.Weather, res.Provenance))
	}
}
