package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/seatbook/seatbook-backend/internal/models"
	"github.com/seatbook/seatbook-backend/internal/services"
	"github.com/seatbook/seatbook-backend/internal/store"
	"github.com/seatbook/seatbook-backend/pkg/clientip"
)

// CreateReservation reserves a seat at an event for the authenticated
// identity. One reservation per (event, user) pair.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	eventID, err := strconv.ParseInt(r.PostFormValue("event_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.Events.Get(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if event.IsFull() {
		respondError(w, http.StatusConflict, "event is full")
		return
	}

	res := &models.Reservation{
		EventID: eventID,
		UserID:  sess.UserID,
		Comment: r.PostFormValue("comment"),
		Code:    uuid.New().String(),
	}
	if err := h.Reservations.Create(r.Context(), res); err != nil {
		if errors.Is(err, store.ErrDuplicateReservation) {
			respondError(w, http.StatusConflict, store.ErrDuplicateReservation.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create reservation")
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Record(r.Context(), services.AuditEvent{
			Kind:      services.AuditReserve,
			UserID:    sess.UserID,
			IPAddress: clientip.RealClientIP(r),
			Success:   true,
		})
	}

	res.EventName = event.Name
	res.EventDate = event.Date
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"message":     "Reservation confirmed",
		"reservation": res,
	})
}

// MyReservations lists the authenticated identity's reservations.
func (h *Handler) MyReservations(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	reservations, err := h.Reservations.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"reservations": reservations,
	})
}
