package domain

import "errors"

var (
	ErrInvalidHotel     = errors.New("invalid_hotel")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidTaxRate   = errors.New("invalid_tax_rate")
	ErrNotFound         = errors.New("not_found")
	ErrSubscriptionLock = errors.New("subscription_inactive")
)
