package domain

import (
	"errors"
	"regexp"
	"time"
)

// User is the core user entity. The two session timestamps live on the user
// row; they are the per-principal authority every issued token is checked
// against.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // nil when not soft-deleted
	// LastLoggedInAt is updated on every successful login; nil before the
	// first login.
	LastLoggedInAt *time.Time
	// LastLoggedOutAt is updated on every logout and on account deletion;
	// nil before the first logout.
	LastLoggedOutAt *time.Time
}

// Deleted reports whether the user is soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email shape. Returns an error describing the failure.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
