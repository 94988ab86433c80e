package domain

import "errors"

var (
	ErrInvalidHotel       = errors.New("invalid_hotel")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrNotFound           = errors.New("not_found")
	ErrInactiveAccount    = errors.New("inactive_account")
)
