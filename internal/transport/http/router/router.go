package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/dkotelnikov/eventory/internal/config"
	"github.com/dkotelnikov/eventory/internal/transport/http/handlers"
	authmw "github.com/dkotelnikov/eventory/internal/transport/http/middleware"
)

func New(
	events *handlers.EventsHandler,
	requests *handlers.RequestsHandler,
	cat *handlers.CatalogHandler,
	health *handlers.HealthHandler,
	auth *authmw.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", health.Healthz)

	// public surface
	r.Get("/events", events.SearchPublic)
	r.Get("/events/{eventId}", events.GetPublic)
	r.Get("/categories", cat.ListCategories)
	r.Get("/categories/{catId}", cat.GetCategory)

	// private surface: the token's uid must match {userId}
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Use(auth.RequireSelf)

		r.Post("/events", events.Create)
		r.Get("/events", events.ListOwn)
		r.Get("/events/{eventId}", events.GetOwn)
		r.Patch("/events/{eventId}", events.UpdateOwn)
		r.Get("/events/{eventId}/requests", requests.ListForEvent)
		r.Patch("/events/{eventId}/requests", requests.UpdateBatch)

		r.Post("/requests", requests.Create)
		r.Get("/requests", requests.ListOwn)
		r.Patch("/requests/{requestId}/cancel", requests.Cancel)
	})

	// admin surface
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		r.Get("/events", events.SearchAdmin)
		r.Patch("/events/{eventId}", events.UpdateAdmin)

		r.Post("/categories", cat.CreateCategory)
		r.Patch("/categories/{catId}", cat.UpdateCategory)
		r.Delete("/categories/{catId}", cat.DeleteCategory)

		r.Get("/users", cat.ListUsers)
		r.Post("/users", cat.CreateUser)
		r.Delete("/users/{userId}", cat.DeleteUser)
	})

	return r
}
