// Package store contains the persistence layer: context-aware Postgres
// repositories behind small interfaces so handlers can be tested with fakes.
package store

import (
	"context"
	"errors"

	"github.com/seatbook/seatbook-backend/internal/models"
)

// Conflict and lookup errors surfaced by the repositories.
var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrIdentityNotFound     = errors.New("identity not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventExists          = errors.New("event already registered")
	ErrDuplicateReservation = errors.New("already reserved for this event")
)

// IdentityStore owns user identities, keyed by the email digest.
type IdentityStore interface {
	// Create inserts a new identity and fills in ID and CreatedAt.
	// A duplicate email digest yields ErrEmailTaken, whether caught by the
	// pre-insert lookup or by the unique constraint itself.
	Create(ctx context.Context, user *models.User) error
	GetByEmailHash(ctx context.Context, emailHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	// MarkVerified transitions an identity out of the provisional state.
	// Extension point for a future email verification step; no workflow
	// calls it yet.
	MarkVerified(ctx context.Context, id int64) error
}

// EventStore manages the event list.
type EventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// ReservationStore links identities to events.
type ReservationStore interface {
	// Create inserts a reservation; a duplicate (event, user) pair yields
	// ErrDuplicateReservation.
	Create(ctx context.Context, res *models.Reservation) error
	ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.AdminReservation, error)
	CountsByUser(ctx context.Context) ([]models.UserReservationCount, error)
}
