package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"session-auth-service/backend/internal/session/domain"
)

// PostgresRepository stores session timestamps on the users table; the state
// is co-located with the principal's record so one row serves all of the
// principal's concurrent sessions.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository returns a session repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

// RecordLogin sets last_logged_in_at to the current instant and returns the
// instant used, truncated to millisecond precision to match the stored value.
func (r *PostgresRepository) RecordLogin(ctx context.Context, subject string) (time.Time, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	const q = `
		UPDATE users
		SET last_logged_in_at = $2, updated_at = $2
		WHERE email = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, q, subject, now)
	if err != nil {
		return time.Time{}, err
	}
	if tag.RowsAffected() == 0 {
		return time.Time{}, ErrUnknownSubject
	}
	return now, nil
}

// RecordLogout sets last_logged_out_at to the current instant.
func (r *PostgresRepository) RecordLogout(ctx context.Context, subject string) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	const q = `
		UPDATE users
		SET last_logged_out_at = $2, updated_at = $2
		WHERE email = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, q, subject, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownSubject
	}
	return nil
}

// Get returns session state for subject, or nil when the principal is unknown
// or soft-deleted.
func (r *PostgresRepository) Get(ctx context.Context, subject string) (*domain.State, error) {
	const q = `
		SELECT email, last_logged_in_at, last_logged_out_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var st domain.State
	err := r.pool.QueryRow(ctx, q, subject).Scan(&st.Subject, &st.LastLoggedInAt, &st.LastLoggedOutAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}
