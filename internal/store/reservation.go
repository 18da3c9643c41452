package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/seatbook/seatbook-backend/internal/models"
)

// PostgresReservationStore implements ReservationStore on database/sql.
type PostgresReservationStore struct {
	db *sql.DB
}

func NewPostgresReservationStore(db *sql.DB) *PostgresReservationStore {
	return &PostgresReservationStore{db: db}
}

var _ ReservationStore = (*PostgresReservationStore)(nil)

func (s *PostgresReservationStore) Create(ctx context.Context, res *models.Reservation) error {
	query := `
		INSERT INTO reservations (event_id, user_id, comment, code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		res.EventID, res.UserID, res.Comment, res.Code,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReservation
		}
		return fmt.Errorf("insert reservation: %w", err)
	}

	return nil
}

func (s *PostgresReservationStore) ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	query := `
		SELECT r.id, r.event_id, r.user_id, r.comment, r.code, r.created_at, e.name, e.date
		FROM reservations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []models.Reservation
	for rows.Next() {
		var r models.Reservation
		var comment sql.NullString
		if err := rows.Scan(&r.ID, &r.EventID, &r.UserID, &comment, &r.Code,
			&r.CreatedAt, &r.EventName, &r.EventDate); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		r.Comment = comment.String
		out = append(out, r)
	}

	return out, rows.Err()
}

func (s *PostgresReservationStore) ListAll(ctx context.Context) ([]models.AdminReservation, error) {
	query := `
		SELECT u.name, u.email_encrypted, e.name, r.created_at
		FROM reservations r
		JOIN users u ON u.user_id = r.user_id
		JOIN events e ON e.id = r.event_id
		ORDER BY r.id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all reservations: %w", err)
	}
	defer rows.Close()

	var out []models.AdminReservation
	for rows.Next() {
		var r models.AdminReservation
		if err := rows.Scan(&r.UserName, &r.EmailEncrypted, &r.EventName, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin reservation: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (s *PostgresReservationStore) CountsByUser(ctx context.Context) ([]models.UserReservationCount, error) {
	query := `
		SELECT u.user_id, u.name, COUNT(r.id)
		FROM reservations r
		JOIN users u ON u.user_id = r.user_id
		GROUP BY u.user_id, u.name
		ORDER BY u.user_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count reservations by user: %w", err)
	}
	defer rows.Close()

	var out []models.UserReservationCount
	for rows.Next() {
		var c models.UserReservationCount
		if err := rows.Scan(&c.UserID, &c.UserName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan reservation count: %w", err)
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
