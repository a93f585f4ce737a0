package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Redirect engine errors
	ErrUnknownReason = errors.New("unknown redirect reason")

	// Community errors
	ErrCommunityNotFound = errors.New("community not found")
	ErrCommunityExists   = errors.New("community already exists")
	ErrInvalidIdent      = errors.New("invalid community ident")

	// Config errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)

// FieldError reports an input record that failed validation. It names the
// offending field so callers can treat the failure as a request-construction
// bug rather than a routing decision.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
