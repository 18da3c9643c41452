package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seatbook/seatbook-backend/internal/models"
)

// PostgresEventStore implements EventStore on database/sql.
type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

var _ EventStore = (*PostgresEventStore)(nil)

func (s *PostgresEventStore) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT e.id, e.name, e.date, e.capacity, COUNT(r.id)
		FROM events e
		LEFT JOIN reservations r ON r.event_id = e.id
		GROUP BY e.id
		ORDER BY e.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.Reserved); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *PostgresEventStore) Get(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT e.id, e.name, e.date, e.capacity, COUNT(r.id)
		FROM events e
		LEFT JOIN reservations r ON r.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`

	e := &models.Event{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Date, &e.Capacity, &e.Reserved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("lookup event: %w", err)
	}

	return e, nil
}

func (s *PostgresEventStore) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, date, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, event.Name, event.Date, event.Capacity).Scan(&event.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEventExists
		}
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (s *PostgresEventStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrEventNotFound
	}
	return nil
}
