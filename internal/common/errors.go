// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration against an identity that already has an account.
	ErrAccountExists = errors.New("account already exists")

	// Login failure. Unknown identity, wrong password, and an unverified
	// account all surface as this one error so the caller cannot tell
	// which case it hit.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InvalidInputError reports which registration field failed validation.
// No state is mutated when it is returned.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s", e.Field)
}

// NewInvalidInputError returns an InvalidInputError for the given field.
func NewInvalidInputError(field string) *InvalidInputError {
	return &InvalidInputError{Field: field}
}

// DeliveryError wraps a failure of the email collaborator. The account the
// delivery was for has already been persisted, so callers must not treat
// this as a failed registration.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("verification email delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
