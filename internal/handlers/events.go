package handlers

import (
	"net/http"

	"github.com/seatbook/seatbook-backend/internal/models"
)

// ListEvents returns the event list, ordered by id, with seat counts.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
	})
}
