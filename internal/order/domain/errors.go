package domain

import "errors"

var (
	ErrInvalidHotel    = errors.New("invalid_hotel")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidTable    = errors.New("invalid_table")
	ErrInvalidWaiter   = errors.New("invalid_waiter")
	ErrEmptyOrder      = errors.New("empty_order")
	ErrUnknownMenuItem = errors.New("unknown_menu_item")
	ErrItemUnavailable = errors.New("item_unavailable")
	ErrInvalidStatus   = errors.New("invalid_order_status")
	ErrTerminalStatus  = errors.New("order_in_terminal_status")
	ErrNotFound        = errors.New("not_found")
)
