package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/httpserver/handlers"
)

func init() { Register(registerDashboard) }

// registerDashboard mounts the weather, news, and settings surfaces.
func registerDashboard(r chi.Router, d deps.Deps) {
	r.Route("/api/weather", func(r chi.Router) {
		r.Get("/", handlers.Weather(d))
		r.Get("/{location}", handlers.Weather(d))
	})

	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", handlers.News(d))
		r.Get("/categories", handlers.NewsCategories(d))
	})

	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", handlers.GetSettings(d))
		r.Put("/", handlers.UpdateSettings(d))
		r.Delete("/", handlers.ResetSettings(d))
	})
}
