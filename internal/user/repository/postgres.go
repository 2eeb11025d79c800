package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"session-auth-service/backend/internal/user/domain"
)

// ErrNoRowUpdated is returned when an update matched no live user row.
var ErrNoRowUpdated = errors.New("no user row updated")

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a user repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByEmail returns the user with the given email, or nil if not found or
// soft-deleted. It returns an error only for database failures.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, email, password_hash, first_name, last_name,
		       created_at, updated_at, deleted_at,
		       last_logged_in_at, last_logged_out_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
		&u.LastLoggedInAt, &u.LastLoggedOutAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create persists the user. A partial unique index on email (live rows only)
// lets a previously deleted email be registered again.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
		INSERT INTO users (id, email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// SoftDelete sets deleted_at and last_logged_out_at in one statement; the
// logout marker is what makes the principal's outstanding tokens unusable.
func (r *PostgresRepository) SoftDelete(ctx context.Context, email string, at time.Time) error {
	const q = `
		UPDATE users
		SET deleted_at = $2, last_logged_out_at = $2, updated_at = $2
		WHERE email = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, q, email, at.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowUpdated
	}
	return nil
}
