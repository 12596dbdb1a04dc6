/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/officials/*      Official management
  /api/competitions/*   Competitions, rosters, payment generation
  /api/roles/*          Rate configuration
  /api/payments/*       Payment listing and state transitions
  /api/settings         Keyed configuration
  /api/demo             Demo data seeding (dev only)
  /metrics              Prometheus metrics

SECURITY NOTE:
  No authentication middleware; auth is out of scope for this service and
  expected at the gateway.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/officials", func(r chi.Router) {
			r.Get("/", h.ListOfficials)
			r.Post("/", h.CreateOfficial)
			r.Get("/{id}", h.GetOfficial)
			r.Delete("/{id}", h.DeleteOfficial)
		})

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.ListCompetitions)
			r.Post("/", h.CreateCompetition)
			r.Get("/{id}", h.GetCompetition)
			r.Delete("/{id}", h.DeleteCompetition)
			r.Get("/{id}/assignments", h.ListAssignments)
			r.Post("/{id}/assignments", h.CreateAssignment)
			r.Get("/{id}/payments", h.ListCompetitionPayments)
			r.Post("/{id}/payments/generate", h.GeneratePayments)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteAssignment)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Get("/", h.ListRoles)
			r.Post("/", h.CreateRole)
			r.Delete("/{id}", h.DeleteRole)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Post("/{id}/paid", h.MarkPaymentPaid)
		})

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)

		r.Post("/demo", h.LoadDemo)
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
