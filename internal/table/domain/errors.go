package domain

import "errors"

var (
	ErrInvalidHotel  = errors.New("invalid_hotel")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidNumber = errors.New("invalid_table_number")
	ErrInvalidStatus = errors.New("invalid_table_status")
	ErrNotFound      = errors.New("not_found")
)
