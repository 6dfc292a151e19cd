package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSecretRequired = errors.New("auth: jwt secret required")

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")

	// ErrUnauthorized is returned when a cryptographically valid token no
	// longer maps to a live session (user deleted or token revoked).
	ErrUnauthorized = errors.New("auth: unauthorized")
)

// ValidationError reports the fields that failed validation or were not
// permitted by the update allow-list.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("auth: validation failed: %s", strings.Join(e.Fields, ", "))
}

func newValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidationError extracts a ValidationError from an error chain.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
