package models

import "time"

// Reservation links an identity to an event, unique per (event, user) pair.
// Code is the confirmation code shown to the visitor.
type Reservation struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Comment   string    `json:"comment,omitempty"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields for listings; empty outside of list queries.
	EventName string `json:"event_name,omitempty"`
	EventDate string `json:"event_date,omitempty"`
}
