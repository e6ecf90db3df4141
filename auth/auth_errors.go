package auth

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials covers both "no such email" and "wrong password".
// Callers must not be able to tell which one happened, so registered emails
// cannot be enumerated through the login endpoint.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports a missing or malformed registration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
