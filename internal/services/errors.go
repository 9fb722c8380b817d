package services

import "errors"

// Sentinel errors surfaced by the services. Handlers map these onto the HTTP
// taxonomy; anything else is a downstream-dependency failure and becomes a
// 500 without a retry.
var (
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrEmailTaken      = errors.New("email already exists")
	ErrUnauthorized    = errors.New("unauthorized")

	ErrMissingName     = errors.New("missing name")
	ErrInvalidType     = errors.New("invalid type")
	ErrMissingData     = errors.New("missing data")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrNotFound        = errors.New("not found")
)
