// Package http wires the API routes and middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docsearch/internal/handlers"
	"docsearch/internal/indexer"
	"docsearch/internal/search"
	"docsearch/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchEngine search.Engine
	Pipeline     *indexer.Pipeline
	Admin        storage.AdminStore
	DB           handlers.Pinger
	IndexRoot    string // Default root for index requests that name none
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Pipeline, deps.Admin, deps.IndexRoot))
		r.Method(http.MethodPost, "/search", handlers.NewSearchHandler(deps.SearchEngine))
		r.Method(http.MethodDelete, "/documents", handlers.NewDocumentsHandler(deps.Pipeline))
		r.Method(http.MethodGet, "/stats", handlers.NewStatsHandler(deps.Admin))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB))
	})

	return r
}
