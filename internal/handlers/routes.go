package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.handleHealth)

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Auth (public)
	r.Post("/api/auth/login", h.handleLogin)

	// API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		r.Post("/api/auth/logout", h.handleLogout)
		r.Get("/api/auth/me", h.handleMe)

		r.Get("/api/dashboard", h.handleGetDashboard)

		// Events
		r.Get("/api/events", h.handleGetEvents)
		r.Post("/api/events", h.handleCreateEvent)
		r.Get("/api/events/{id}", h.handleGetEvent)
		r.Put("/api/events/{id}", h.handleUpdateEvent)
		r.Patch("/api/events/{id}", h.handleUpdateEvent)
		r.Delete("/api/events/{id}", h.handleDeleteEvent)

		// Check-in rules
		r.Get("/api/events/{id}/checkin-rules", h.handleGetCheckinRules)
		r.Put("/api/events/{id}/checkin-rules", h.handleSaveCheckinRules)
		r.Post("/api/checkin-rules/validate", h.handleValidateCheckinRules)

		// Rule editing sessions
		r.Route("/api/checkin/sessions", func(r chi.Router) {
			r.Post("/", h.handleOpenSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.handleGetSession)
				r.Delete("/", h.handleCloseSession)
				r.Post("/rules", h.handleAddSessionRule)
				r.Patch("/rules/{ruleID}", h.handleUpdateSessionRule)
				r.Delete("/rules/{ruleID}", h.handleRemoveSessionRule)
				r.Post("/save", h.handleSaveSession)
				r.Post("/reload", h.handleReloadSession)
			})
		})

		// Participants
		r.Get("/api/participants", h.handleGetParticipants)
		r.Post("/api/participants", h.handleCreateParticipant)
		r.Get("/api/participants/{id}", h.handleGetParticipant)
		r.Put("/api/participants/{id}", h.handleUpdateParticipant)
		r.Patch("/api/participants/{id}", h.handleUpdateParticipant)
		r.Delete("/api/participants/{id}", h.handleDeleteParticipant)
		r.Post("/api/participants/{id}/checkin", h.handleToggleCheckin)
		r.Get("/api/participants/{id}/qr", h.handleGetParticipantQR)
	})

	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]string{"status": "ok"})
}
