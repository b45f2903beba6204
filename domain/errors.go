package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend is unreachable or returned a
	// failure envelope. Wrapped by the resource layer so callers can use
	// errors.Is without knowing the transport.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrBusy indicates a mutation was rejected because another mutation
	// on the same target field is still in flight.
	ErrBusy = errors.New("mutation already in flight")
)

// ValidationError reports a caller-supplied value that violates a field
// constraint. Raised before any backend call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
