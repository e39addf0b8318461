package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", s.handleHealth)

		// System metrics
		r.Get("/metrics", s.handleMetrics)

		// Slot schedule definition
		r.Get("/slots", s.handleListSlots)

		// Recent feedback log (dashboards, exports)
		r.Get("/feedback", s.handleListFeedback)

		// Store catalog and zone sessions
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", s.handleListStores)

			r.Route("/{storeID}", func(r chi.Router) {
				r.Get("/", s.handleGetStore)
				r.Get("/states", s.handleListZoneStates)

				r.Route("/zones/{zoneID}", func(r chi.Router) {
					r.Get("/", s.handleGetZone)
					r.Get("/state", s.handleGetZoneState)
					r.Get("/slots", s.handleZoneSlots)
					r.Post("/feedback", s.handleSubmitFeedback)
				})
			})
		})

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
