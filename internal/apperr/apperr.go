// Package apperr defines the kinded errors returned by the auth core.
// Every operation returns either a success value or one of these kinds;
// no raw store or codec error crosses the service boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and for HTTP status mapping.
type Kind int

const (
	// KindValidation marks malformed input (bad email format, short password).
	KindValidation Kind = iota
	// KindUnauthorized marks bad credentials or a revoked/expired/malformed token.
	// Deliberately also covers unknown subjects during authentication so the
	// response does not leak account existence.
	KindUnauthorized
	// KindAlreadyExists marks a registration collision.
	KindAlreadyExists
	// KindNotFound marks a missing record; internal use, surfaced as
	// KindUnauthorized at the authenticate boundary.
	KindNotFound
	// KindInternal marks a store or signing failure.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an Error of the given kind wrapping cause. A nil cause yields
// an Error with no chain.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, else KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Chain walks the cause chain iteratively and returns one line per error,
// outermost first. Used for display; semantics live in Kind, not the chain.
func Chain(err error) []string {
	var lines []string
	for err != nil {
		if e, ok := err.(*Error); ok {
			lines = append(lines, fmt.Sprintf("%s [%s]", e.Error(), e.Kind))
		} else {
			lines = append(lines, err.Error())
		}
		err = errors.Unwrap(err)
	}
	return lines
}
