// Package common defines shared constants and sentinel errors used across
// the vault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStoreAccess covers every failure to read, decode or write a
	// persisted collection. It is never retried automatically.
	ErrStoreAccess     = errors.New("store access error")
	ErrVersionConflict = errors.New("version conflict")

	// Validation errors. The concrete field mapping travels next to it,
	// see validation.Errors.
	ErrValidation = errors.New("validation error")

	// Domain errors.
	ErrAccountExists = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
