package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes; internal errors are never surfaced to the caller directly.
var (
	// ErrNotFound covers both "does not exist" and "exists but is not yours"
	// so that record ownership is never leaked.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate signals a uniqueness-constraint violation (email, username).
	ErrDuplicate = errors.New("duplicate identity")

	// ErrInvalidCredentials is deliberately uniform for unknown email and
	// wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// ValidationError carries a user-facing message for structurally invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
