package engine

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"session-auth-service/backend/internal/security"
	"session-auth-service/backend/internal/session/domain"
)

// base is second-aligned so second-resolution iat claims compare exactly
// against millisecond session timestamps.
var base = time.Unix(1_700_000_000, 0).UTC()

func claimsAt(issuedAt time.Time) *security.SessionClaims {
	return &security.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
}

// state builds session state from second offsets relative to base; a negative
// offset means the timestamp is absent.
func stateAt(loginSec, logoutSec int) *domain.State {
	s := &domain.State{Subject: "alice@example.com"}
	if loginSec >= 0 {
		t := base.Add(time.Duration(loginSec) * time.Second)
		s.LastLoggedInAt = &t
	}
	if logoutSec >= 0 {
		t := base.Add(time.Duration(logoutSec) * time.Second)
		s.LastLoggedOutAt = &t
	}
	return s
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		issuedSec int
		loginSec  int // -1 = absent
		logoutSec int // -1 = absent
		want      Verdict
	}{
		{"never logged in, never logged out", 0, -1, -1, Revoked},
		{"logged in once, never logged out", 5, 5, -1, Valid},
		{"token predates session but subject logged in", 1, 5, -1, Valid},
		{"logged out after login", 0, 0, 5, Revoked},
		{"equal login and logout timestamps resolve to revoked", 10, 10, 10, Revoked},
		{"fresh login after logout, new token", 10, 10, 5, Valid},
		{"fresh login after logout, pre-logout token replayed", 0, 10, 5, Revoked},
		{"token issued at the exact logout instant", 5, 10, 5, Revoked},
		{"token issued just after the last logout", 6, 10, 5, Valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := claimsAt(base.Add(time.Duration(tt.issuedSec) * time.Second))
			got := Check(claims, stateAt(tt.loginSec, tt.logoutSec))
			if got != tt.want {
				t.Errorf("Check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck_UnknownSubject(t *testing.T) {
	if got := Check(claimsAt(base), nil); got != UnknownSubject {
		t.Errorf("Check with nil state = %v, want UnknownSubject", got)
	}
}

func TestCheck_MalformedClaims(t *testing.T) {
	if got := Check(nil, stateAt(0, -1)); got != Malformed {
		t.Errorf("Check(nil claims) = %v, want Malformed", got)
	}
	noIat := &security.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"}}
	if got := Check(noIat, stateAt(0, -1)); got != Malformed {
		t.Errorf("Check without iat = %v, want Malformed", got)
	}
}

// A logout between two whole seconds must still revoke a token whose iat
// truncated to the earlier second: seconds scale to milliseconds before the
// comparison.
func TestCheck_MillisecondNormalization(t *testing.T) {
	login := base.Add(10 * time.Second)
	logout := base.Add(5*time.Second + 500*time.Millisecond)
	st := &domain.State{Subject: "alice@example.com", LastLoggedInAt: &login, LastLoggedOutAt: &logout}

	// iat 5s: 5000ms < 5500ms -> revoked even though the subject is logged in.
	if got := Check(claimsAt(base.Add(5*time.Second)), st); got != Revoked {
		t.Errorf("iat below sub-second logout: got %v, want Revoked", got)
	}
	// iat 6s: 6000ms > 5500ms -> valid.
	if got := Check(claimsAt(base.Add(6*time.Second)), st); got != Valid {
		t.Errorf("iat above sub-second logout: got %v, want Valid", got)
	}
}

// Monotonic revocation: any token with iat <= the logout instant is rejected,
// regardless of how many sessions were open.
func TestCheck_MonotonicRevocation(t *testing.T) {
	st := stateAt(0, 20)
	for sec := 0; sec <= 20; sec += 5 {
		if got := Check(claimsAt(base.Add(time.Duration(sec)*time.Second)), st); got != Revoked {
			t.Errorf("iat=+%ds after logout at +20s: got %v, want Revoked", sec, got)
		}
	}
}

func TestVerdict_String(t *testing.T) {
	for v, want := range map[Verdict]string{
		Valid:          "valid",
		Revoked:        "revoked",
		Expired:        "expired",
		Malformed:      "malformed",
		UnknownSubject: "unknown_subject",
		Verdict(99):    "unknown",
	} {
		if got := v.String(); got != want {
			t.Errorf("Verdict(%d).String() = %q, want %q", int(v), got, want)
		}
	}
}
