package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRefreshInvalid     = errors.New("refresh token invalid or revoked")
	ErrInvalidRole        = errors.New("unknown primary role")
	ErrWrongLocation      = errors.New("user belongs to a different location")

	ErrAdminHasNoLocation      = errors.New("administrator has no location")
	ErrCodeLength              = errors.New("invitation code must be exactly 6 characters")
	ErrCodeNotFound            = errors.New("invitation code not found")
	ErrCodeExpired             = errors.New("invitation code expired")
	ErrNotCodeOwner            = errors.New("invitation code belongs to another administrator")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique invitation code")

	ErrInvalidGrantKind = errors.New("unknown permission kind")

	ErrItemNotFound = errors.New("inventory item not found")
)
