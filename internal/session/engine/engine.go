// Package engine decides whether a parsed session token is currently usable,
// given the subject's session state. Revocation is derived from the two
// session timestamps compared against the token's iat claim; nothing is
// persisted per token.
package engine

import (
	"session-auth-service/backend/internal/security"
	"session-auth-service/backend/internal/session/domain"
)

// Verdict is the outcome of a validity check.
type Verdict int

const (
	// Valid means the token is currently usable.
	Valid Verdict = iota
	// Revoked means a logout at or after the token's issuance invalidated it.
	Revoked
	// Expired means the token is past its expiry. Produced upstream by the
	// codec; listed here so callers have one verdict vocabulary.
	Expired
	// Malformed means the token failed signature, issuer, or audience checks
	// upstream.
	Malformed
	// UnknownSubject means no session state exists for the token's subject
	// (never registered, or soft-deleted).
	UnknownSubject
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Revoked:
		return "revoked"
	case Expired:
		return "expired"
	case Malformed:
		return "malformed"
	case UnknownSubject:
		return "unknown_subject"
	default:
		return "unknown"
	}
}

// Check decides whether claims are currently usable for the subject described
// by state. claims must already have passed signature/issuer/audience/expiry
// verification; state may be nil when the subject has no record.
//
// The token claim carries iat at second resolution while session timestamps
// have millisecond resolution, so both sides are compared in milliseconds.
// Absent timestamps count as the epoch. The subject counts as logged out when
// lastLoggedOutAt >= lastLoggedInAt — the tie resolves to logged-out, the
// safer default. A logged-in subject's token is usable only when its iat is
// strictly after the last logout, which rejects a pre-logout token replayed
// after a fresh login.
func Check(claims *security.SessionClaims, state *domain.State) Verdict {
	if claims == nil || claims.IssuedAt == nil {
		return Malformed
	}
	if state == nil {
		return UnknownSubject
	}

	var loginMillis, logoutMillis int64
	if state.LastLoggedInAt != nil {
		loginMillis = state.LastLoggedInAt.UnixMilli()
	}
	if state.LastLoggedOutAt != nil {
		logoutMillis = state.LastLoggedOutAt.UnixMilli()
	}

	// iat is seconds since epoch; scale to milliseconds before comparing.
	issuedMillis := claims.IssuedAt.Time.Unix() * 1000

	loggedOut := logoutMillis >= loginMillis
	if !loggedOut && issuedMillis > logoutMillis {
		return Valid
	}
	return Revoked
}
