package models

import "time"

// User is a registered identity. The email is persisted twice: encrypted for
// human display (admin views, correspondence) and as a one-way digest which is
// the actual lookup/uniqueness key.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	EmailEncrypted string    `json:"-"`
	EmailHash      string    `json:"-"`
	PasswordHash   string    `json:"-"`
	IsProvisional  bool      `json:"is_provisional"`
	CreatedAt      time.Time `json:"created_at"`
}
