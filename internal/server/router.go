package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearpath-legal/sponsorag/internal/api"
	"github.com/clearpath-legal/sponsorag/internal/api/handlers"
	"github.com/clearpath-legal/sponsorag/internal/api/middleware"
)

type RouterConfig struct {
	// APIToken guards the query endpoints; empty disables auth.
	APIToken        string
	GenerateHandler *handlers.GenerateHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.APIToken))

		r.Post("/generate", cfg.GenerateHandler.Generate)
		r.Post("/search", cfg.GenerateHandler.Search)
		r.Get("/usecases", cfg.GenerateHandler.UseCases)
	})

	return r
}
