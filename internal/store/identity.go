package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/seatbook/seatbook-backend/internal/models"
)

// PostgresIdentityStore implements IdentityStore on database/sql.
type PostgresIdentityStore struct {
	db *sql.DB
}

func NewPostgresIdentityStore(db *sql.DB) *PostgresIdentityStore {
	return &PostgresIdentityStore{db: db}
}

var _ IdentityStore = (*PostgresIdentityStore)(nil)

func (s *PostgresIdentityStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email_encrypted, email_hash, password_hash, is_provisional)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING user_id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Name, user.EmailEncrypted, user.EmailHash, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	user.IsProvisional = true

	return nil
}

func (s *PostgresIdentityStore) GetByEmailHash(ctx context.Context, emailHash string) (*models.User, error) {
	query := `
		SELECT user_id, name, email_encrypted, email_hash, password_hash, is_provisional, created_at
		FROM users WHERE email_hash = $1
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, emailHash).Scan(
		&user.ID, &user.Name, &user.EmailEncrypted, &user.EmailHash,
		&user.PasswordHash, &user.IsProvisional, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup identity by digest: %w", err)
	}

	return user, nil
}

func (s *PostgresIdentityStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT user_id, name, email_encrypted, email_hash, password_hash, is_provisional, created_at
		FROM users WHERE user_id = $1
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.EmailEncrypted, &user.EmailHash,
		&user.PasswordHash, &user.IsProvisional, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup identity by id: %w", err)
	}

	return user, nil
}

func (s *PostgresIdentityStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count identities: %w", err)
	}
	return n, nil
}

func (s *PostgresIdentityStore) MarkVerified(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_provisional = FALSE WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark identity verified: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505). The schema-level constraint is the canonical
// duplicate signal, so check-then-act races still resolve correctly.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
