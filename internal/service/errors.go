// internal/service/errors.go
package service

import "errors"

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
