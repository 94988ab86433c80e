package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the bill lifecycle. DRAFT until payment, PAID after.
type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusPaid  Status = "PAID"
)

// PaymentMode is how a bill was settled.
type PaymentMode string

const (
	PaymentCash PaymentMode = "CASH"
	PaymentCard PaymentMode = "CARD"
	PaymentUPI  PaymentMode = "UPI"
)

// ParsePaymentMode normalizes free-form input. Unrecognized values
// fall back to CASH rather than rejecting the payment.
func ParsePaymentMode(value string) PaymentMode {
	mode := PaymentMode(strings.ToUpper(strings.TrimSpace(value)))
	switch mode {
	case PaymentCash, PaymentCard, PaymentUPI:
		return mode
	}
	return PaymentCash
}

// Bill is the settlement record for one completed order. The unique
// (hotel_id, order_id) index guarantees at most one bill per order.
type Bill struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_bills_hotel_order,unique"`
	OrderID snowflake.ID `gorm:"column:order_id;not null;index:idx_bills_hotel_order,unique"`

	BillNumber string `gorm:"column:bill_number;type:text;not null;uniqueIndex"`
	Status     Status `gorm:"type:text;not null;default:'DRAFT'"`

	SubtotalMinor      int64 `gorm:"column:subtotal_minor;not null"`
	TaxMinor           int64 `gorm:"column:tax_minor;not null"`
	ServiceChargeMinor int64 `gorm:"column:service_charge_minor;not null"`
	DiscountMinor      int64 `gorm:"column:discount_minor;not null;default:0"`
	TotalMinor         int64 `gorm:"column:total_minor;not null"`

	PaymentMode *PaymentMode `gorm:"column:payment_mode;type:text"`
	PaidAt      *time.Time   `gorm:"column:paid_at"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Bill) TableName() string { return "bills" }
