package repository

import (
	"context"
	"time"

	"session-auth-service/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	// GetByEmail returns the user with the given email, or nil if no such
	// user exists or the user is soft-deleted.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists the user. The user must have ID set.
	Create(ctx context.Context, u *domain.User) error
	// SoftDelete marks the user deleted at the given instant and records a
	// logout in the same write, so every outstanding token stops working
	// immediately.
	SoftDelete(ctx context.Context, email string, at time.Time) error
}
