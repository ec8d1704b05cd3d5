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
  /api/members/*        Member management
  /api/entries/*        Time entry CRUD
  /api/requests/*       Leave request submission and approval
  /api/holidays/*       Holiday calendars
  /api/reports/*        Individual, team and PDF reports
  /api/freezes          Freeze rule creation
  /api/messages         Active push messages
  /api/settings/*       Annual leave allowance
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware; the ?viewer parameter names the caller and
  the engine's role policy scopes visibility. Not production hardening.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Member routes
		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.ListMembers)
			r.Post("/", h.CreateMember)
		})

		// Time entry routes
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", h.LogTime)
			r.Put("/{id}", h.UpdateEntry)
			r.Delete("/{id}", h.DeleteEntry)
		})

		// Leave request routes
		r.Route("/requests", func(r chi.Router) {
			r.Post("/", h.SubmitRequest)
			r.Get("/pending", h.ListPendingRequests)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/individual", h.IndividualReport)
			r.Get("/team", h.TeamReport)
			r.Get("/team/export", h.ExportTeamReport)
		})

		// Freeze rules
		r.Post("/freezes", h.CreateFreezeRule)

		// Push messages
		r.Get("/messages", h.ListMessages)

		// Settings
		r.Put("/settings/allowance", h.SetAllowance)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
