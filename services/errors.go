package services

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps any failure to reach or query the expense store.
// Callers surface it as a retryable service error, never as a client fault.
var ErrStoreUnavailable = errors.New("expense store unavailable")

// FieldError reports a request field that failed server-side validation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// AsFieldError unwraps a *FieldError if err carries one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
