// Package common defines shared constants and sentinel errors used across
// storage, service and transport. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors (bad input that never reaches storage).
	ErrorValidation = errors.New("validation error")
)
