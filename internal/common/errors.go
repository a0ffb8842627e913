// Package common defines shared constants and sentinel errors used across
// the notes server and its clients. Callers should use errors.Is to match
// these values; lower layers wrap them with a user-facing message, e.g.
//
//	fmt.Errorf("%w: note not found", common.ErrorNotFound)
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// ErrorInvariant signals a rejected write or payload: a write that should
	// have produced a result produced none, a duplicate record, or a request
	// that does not satisfy the expected shape.
	ErrorInvariant = errors.New("invariant violation")

	// Auth errors (malformed, forged or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

// clientErrors lists the sentinels that are safe to report to a caller.
var clientErrors = []error{
	ErrorNotFound,
	ErrorUnauthorized,
	ErrorForbidden,
	ErrorInvariant,
	ErrInvalidToken,
}

// IsClientError reports whether err belongs to one of the caller-facing
// kinds. Anything else is unclassified and must not leak to clients.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Message returns the user-facing part of a wrapped client error: the text
// following the sentinel prefix, or the sentinel text itself when the error
// carries no extra context.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, target := range clientErrors {
		if !errors.Is(err, target) {
			continue
		}
		msg := err.Error()
		prefix := target.Error() + ": "
		if i := strings.LastIndex(msg, prefix); i >= 0 {
			return msg[i+len(prefix):]
		}
		return target.Error()
	}
	return err.Error()
}
