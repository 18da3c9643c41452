package models

import "time"

// AdminReservation is a reservation row joined with its user and event for
// the admin dashboard. Email holds the decrypted display address; the store
// fills EmailEncrypted and the handler decrypts it.
type AdminReservation struct {
	UserName       string    `json:"user_name"`
	Email          string    `json:"email"`
	EmailEncrypted string    `json:"-"`
	EventName      string    `json:"event_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserReservationCount is the per-user reservation tally on the dashboard.
type UserReservationCount struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Count    int    `json:"count"`
}
