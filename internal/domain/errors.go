package domain

import "errors"

// Error taxonomy shared by services. Handlers translate these to HTTP
// statuses; anything else is a 500.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
