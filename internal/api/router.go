// Package api exposes the supplier analytics over a small JSON HTTP API:
// supplier listing, weighted ranking, and KPI summaries.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/synergic-nexum/supplier-cli/internal/store"
)

// Options tunes router behavior.
type Options struct {
	// RateLimit is the sustained requests-per-second budget. Zero disables
	// rate limiting.
	RateLimit float64
	// PaymentWindows lists the punctuality horizons (days) reported by the
	// KPI endpoint.
	PaymentWindows []int
}

// NewRouter builds the HTTP handler serving the analytics API on top of
// the given store.
func NewRouter(st store.Store, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.RateLimit > 0 {
		r.Use(rateLimitMiddleware(opts.RateLimit))
	}

	h := &handler{store: st, windows: opts.PaymentWindows}
	if len(h.windows) == 0 {
		h.windows = []int{7, 30}
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suppliers", h.listSuppliers)
		r.Get("/ranking", h.ranking)
		r.Get("/kpis", h.kpis)
		r.Get("/uploads", h.listUploads)
	})

	return r
}
