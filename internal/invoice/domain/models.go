package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidHotel = errors.New("invalid_hotel")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)

// Invoice is the append-only payment record cut when a bill settles.
// The unique (hotel_id, bill_id) index guarantees one invoice per bill.
type Invoice struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_invoices_hotel_bill,unique"`
	BillID  snowflake.ID `gorm:"column:bill_id;not null;index:idx_invoices_hotel_bill,unique"`
	OrderID snowflake.ID `gorm:"column:order_id;not null;index"`

	InvoiceNumber string `gorm:"column:invoice_number;type:text;not null;uniqueIndex"`

	AmountMinor int64  `gorm:"column:amount_minor;not null"`
	PaymentMode string `gorm:"column:payment_mode;type:text;not null"`

	IssuedAt  time.Time `gorm:"column:issued_at;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Invoice) TableName() string { return "invoices" }
