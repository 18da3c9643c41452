package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seatbook/seatbook-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	// Auth: registration and login are distinct operations, each with its
	// own validation; there is no shared action-dispatch endpoint.
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)

	// Public event list
	r.Get("/api/events", h.ListEvents)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)
		r.Get("/api/auth/me", h.Me)
		r.Post("/api/reservations", h.CreateReservation)
		r.Get("/api/reservations", h.MyReservations)
	})

	// Admin routes
	r.Get("/api/admin/dashboard", h.AdminDashboard)
	r.Post("/api/admin/events", h.AdminAddEvent)
	r.Delete("/api/admin/events/{id}", h.AdminDeleteEvent)
	r.Get("/api/admin/activity", h.AdminActivity)
}
