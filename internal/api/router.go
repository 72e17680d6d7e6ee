package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/mannaz/internal/teamservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *teamservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Staff profiles.
	r.Get("/staff", h.ListStaff)
	r.Post("/staff", h.CreateStaff)
	r.Get("/staff/{id}", h.GetStaff)
	r.Put("/staff/{id}", h.UpdateStaff)
	r.Delete("/staff/{id}", h.DeleteStaff)

	// Notes and goals per profile.
	r.Get("/staff/{id}/notes", h.StaffNotes)
	r.Post("/staff/{id}/notes", h.AddNote)
	r.Get("/staff/{id}/goals", h.StaffGoals)
	r.Post("/staff/{id}/goals", h.AddGoal)

	// Shared reminders log.
	r.Get("/reminders", h.ListReminders)
	r.Post("/reminders", h.AddReminder)
	r.Post("/reminders/{id}/complete", h.CompleteReminder)

	// Transcript ingestion.
	r.Post("/transcripts", h.ProcessTranscript)

	// Search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
