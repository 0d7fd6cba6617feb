// Package common holds sentinel errors shared by the store, service and HTTP
// layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// store errors
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("existing user found with same email address")

	// service errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSlot        = errors.New("invalid cart slot")
	ErrValidation         = errors.New("validation error")

	// auth errors
	ErrUnauthenticated = errors.New("unauthenticated")
)
