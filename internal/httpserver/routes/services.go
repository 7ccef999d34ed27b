package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/basegeek/startpage/internal/httpserver/deps"
	"github.com/basegeek/startpage/internal/httpserver/handlers"
)

func init() { Register(registerServices) }

func registerServices(r chi.Router, d deps.Deps) {
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", handlers.ListServices(d))
		r.Get("/status", handlers.ServicesStatus(d))
		r.Post("/", handlers.CreateService(d))
		r.Put("/{id}", handlers.UpdateService(d))
		r.Delete("/{id}", handlers.DeleteService(d))
		r.Post("/{id}/check", handlers.CheckService(d))
		r.Post("/monitor", handlers.TriggerMonitor(d))
	})
}
