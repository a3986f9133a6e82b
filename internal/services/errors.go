package services

import "errors"

// Domain errors surfaced by the services. Handlers map these to HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	ErrMenuItemNotFound = errors.New("menu item not found")

	ErrTableNotFound    = errors.New("table not found")
	ErrTableNumberTaken = errors.New("table number already exists")
	ErrTableUnavailable = errors.New("table is not available")

	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderFinalized = errors.New("order is finalized")

	ErrValidation = errors.New("validation failed")
)
