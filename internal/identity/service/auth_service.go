package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"session-auth-service/backend/internal/apperr"
	"session-auth-service/backend/internal/security"
	"session-auth-service/backend/internal/session/engine"
	sessionrepo "session-auth-service/backend/internal/session/repository"
	userdomain "session-auth-service/backend/internal/user/domain"
	userrepo "session-auth-service/backend/internal/user/repository"
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	SoftDelete(ctx context.Context, email string, at time.Time) error
}

// AuthService implements register, login, logout, authenticate, and account
// deletion over a user store, a session-state store, a password hasher, and
// the token codec. Every method returns either a success value or an
// *apperr.Error; no store or codec error escapes unwrapped.
type AuthService struct {
	users    UserRepo
	sessions sessionrepo.Repository
	hasher   *security.Hasher
	tokens   *security.TokenProvider
	tokenTTL time.Duration
}

// NewAuthService returns an AuthService with the given dependencies.
// tokenTTL <= 0 falls back to the token provider's default.
func NewAuthService(users UserRepo, sessions sessionrepo.Repository, hasher *security.Hasher, tokens *security.TokenProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user with a hashed password. A soft-deleted user's email
// counts as available again.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*userdomain.User, error) {
	email = normalizeEmail(email)
	if err := userdomain.ValidateEmail(email); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	if err := userdomain.ValidatePassword(password); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "user lookup failed", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindAlreadyExists, "user already exists")
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "password hashing failed", err)
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "user create failed", err)
	}
	return user, nil
}

// Login verifies credentials, records the login instant, and issues a token
// whose iat matches the recorded instant. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *userdomain.User, error) {
	email = normalizeEmail(email)
	if err := userdomain.ValidateEmail(email); err != nil {
		return "", nil, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}
	if password == "" {
		return "", nil, apperr.New(apperr.KindValidation, "password is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "user lookup failed", err)
	}
	if user == nil {
		return "", nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}

	loginAt, err := s.sessions.RecordLogin(ctx, email)
	if err != nil {
		if errors.Is(err, sessionrepo.ErrUnknownSubject) {
			return "", nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
		}
		return "", nil, apperr.Wrap(apperr.KindInternal, "record login failed", err)
	}

	token, err := s.tokens.Issue(email, displayName(user), loginAt, s.tokenTTL)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInternal, "token signing failed", err)
	}
	return token, user, nil
}

// Logout records a logout for the token's subject, which revokes every token
// issued at or before this instant across all of the subject's sessions. The
// token only needs to pass signature verification; a token the validity
// engine would already reject can still log out.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}
	if err := s.sessions.RecordLogout(ctx, claims.Subject); err != nil {
		if errors.Is(err, sessionrepo.ErrUnknownSubject) {
			return apperr.New(apperr.KindUnauthorized, "invalid token")
		}
		return apperr.Wrap(apperr.KindInternal, "record logout failed", err)
	}
	return nil
}

// Authenticate parses the token and checks it against the subject's current
// session state. Every non-valid verdict maps to the same unauthorized error
// so responses do not reveal whether the account exists or when it logged out.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*security.SessionClaims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}
	state, err := s.sessions.Get(ctx, claims.Subject)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "session state lookup failed", err)
	}
	if verdict := engine.Check(claims, state); verdict != engine.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	return claims, nil
}

// DeleteAccount soft-deletes the token's subject. Deletion records a logout in
// the same write, so the subject's outstanding tokens stop working immediately,
// and the email becomes available for registration again.
func (s *AuthService) DeleteAccount(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}
	if err := s.users.SoftDelete(ctx, claims.Subject, time.Now().UTC()); err != nil {
		if errors.Is(err, userrepo.ErrNoRowUpdated) {
			return apperr.New(apperr.KindUnauthorized, "invalid token")
		}
		return apperr.Wrap(apperr.KindInternal, "user delete failed", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func displayName(u *userdomain.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
