// Package domain holds the per-principal session state the token validity
// decision is made against.
package domain

import "time"

// State is the authority record for one principal. A single write to
// LastLoggedOutAt retroactively invalidates every token issued at or before
// that instant, for all of the principal's concurrent sessions. There is no
// per-token revocation and no persisted blacklist.
type State struct {
	Subject string
	// LastLoggedInAt is nil before the first login. Monotonically
	// non-decreasing: each write sets it to the current instant.
	LastLoggedInAt *time.Time
	// LastLoggedOutAt is nil before the first logout. Monotonically
	// non-decreasing, same as LastLoggedInAt.
	LastLoggedOutAt *time.Time
}
