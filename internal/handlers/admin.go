package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seatbook/seatbook-backend/internal/models"
	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
)

// AdminDashboard returns events with attendance, the reservation list with
// decrypted display emails, and per-user reservation counts.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	reservations, err := h.Reservations.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	// A record whose ciphertext no longer decrypts signals tampering or
	// corruption; surface it instead of skipping the row.
	for i := range reservations {
		email, err := h.Codec.Decrypt(reservations[i].EmailEncrypted)
		if err != nil {
			log.Printf("ERROR: cannot decrypt stored email for reservation of %q: %v",
				reservations[i].UserName, err)
			respondError(w, http.StatusInternalServerError, "reservation record is corrupted")
			return
		}
		reservations[i].Email = email
	}

	counts, err := h.Reservations.CountsByUser(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	if reservations == nil {
		reservations = []models.AdminReservation{}
	}
	if counts == nil {
		counts = []models.UserReservationCount{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"events":             events,
		"reservations":       reservations,
		"reservation_counts": counts,
	})
}

// AdminAddEvent creates a new event. The date must be today or later and
// the name must not already exist.
func (h *Handler) AdminAddEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	name := r.PostFormValue("event_name")
	date := r.PostFormValue("event_date")
	capacityRaw := r.PostFormValue("event_capacity")
	if name == "" || date == "" || capacityRaw == "" {
		respondError(w, http.StatusBadRequest, "event name, date and capacity are required")
		return
	}

	capacity, err := strconv.Atoi(capacityRaw)
	if err != nil || capacity <= 0 {
		respondError(w, http.StatusBadRequest, "capacity must be a positive number")
		return
	}

	eventDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date format")
		return
	}
	today := time.Now().Truncate(24 * time.Hour)
	if eventDate.Before(today) {
		respondError(w, http.StatusBadRequest, "event date must be today or later")
		return
	}

	event := &models.Event{Name: name, Date: date, Capacity: capacity}
	if err := h.Events.Create(r.Context(), event); err != nil {
		if errors.Is(err, store.ErrEventExists) {
			respondError(w, http.StatusConflict, store.ErrEventExists.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Event added",
		"event":   event,
	})
}

// AdminDeleteEvent removes an event and, via cascade, its reservations.
func (h *Handler) AdminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.Events.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Event deleted",
	})
}

// AdminActivity returns the recent auth/reservation audit trail.
func (h *Handler) AdminActivity(w http.ResponseWriter, r *http.Request) {
	if h.Audit == nil {
		respondError(w, http.StatusServiceUnavailable, "audit trail not configured")
		return
	}

	events, err := h.Audit.Recent(r.Context(), 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	if events == nil {
		events = []services.AuditEvent{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"activity": events,
	})
}
