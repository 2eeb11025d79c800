package repository

import (
	"context"
	"errors"
	"time"

	"session-auth-service/backend/internal/session/domain"
)

// ErrUnknownSubject is returned when the principal does not exist or is
// soft-deleted.
var ErrUnknownSubject = errors.New("unknown subject")

// Repository records and reads per-principal session timestamps. Writes are
// last-write-wins on the principal's row; each write sets the field to the
// current instant, so both timestamps are monotonically non-decreasing.
type Repository interface {
	// RecordLogin sets lastLoggedInAt to now and returns the instant used,
	// so the caller can issue a token carrying a consistent timestamp.
	RecordLogin(ctx context.Context, subject string) (time.Time, error)
	// RecordLogout sets lastLoggedOutAt to now. Safe to call with no active
	// session; the marker simply advances.
	RecordLogout(ctx context.Context, subject string) error
	// Get returns the session state for subject, or nil if the principal is
	// unknown or soft-deleted.
	Get(ctx context.Context, subject string) (*domain.State, error)
}
