package domain

import "errors"

var (
	ErrInvalidHotel   = errors.New("invalid_hotel")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidStatus  = errors.New("invalid_bill_status")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyPaid    = errors.New("bill_already_paid")
	ErrBillNotPaid    = errors.New("bill_not_paid")
	ErrOrderNotBilled = errors.New("order_not_billable")
)
