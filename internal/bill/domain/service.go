package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Issuer synthesizes a draft bill for a completed order. Issuing is
// idempotent, a second call for the same order is a no-op.
type Issuer interface {
	IssueForOrder(ctx context.Context, req IssueRequest) (*Bill, error)
}

type Service interface {
	Issuer
	List(ctx context.Context, req ListRequest) ([]Response, error)
	GetByID(ctx context.Context, id string) (*DetailResponse, error)
	Pay(ctx context.Context, req PayRequest) (*DetailResponse, error)
}

// IssueRequest carries the money snapshot copied from the order row.
type IssueRequest struct {
	HotelID            snowflake.ID
	OrderID            snowflake.ID
	SubtotalMinor      int64
	TaxMinor           int64
	ServiceChargeMinor int64
	DiscountMinor      int64
	TotalMinor         int64
}

type ListRequest struct {
	Status string `form:"status"`
}

type PayRequest struct {
	ID          string `json:"-"`
	PaymentMode string `json:"payment_mode"`

	// AmountMinor, when set, overrides the stored total at settlement,
	// for counter adjustments like rounding off the final figure.
	AmountMinor *int64 `json:"amount_minor,omitempty"`
}

type Response struct {
	ID                 string       `json:"id"`
	OrderID            string       `json:"order_id"`
	BillNumber         string       `json:"bill_number"`
	Status             Status       `json:"status"`
	SubtotalMinor      int64        `json:"subtotal_minor"`
	TaxMinor           int64        `json:"tax_minor"`
	ServiceChargeMinor int64        `json:"service_charge_minor"`
	DiscountMinor      int64        `json:"discount_minor"`
	TotalMinor         int64        `json:"total_minor"`
	PaymentMode        *PaymentMode `json:"payment_mode,omitempty"`
	PaidAt             *time.Time   `json:"paid_at,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// DetailResponse decorates a bill with order context for receipts.
type DetailResponse struct {
	Response

	TicketNumber string           `json:"ticket_number,omitempty"`
	TableNumber  string           `json:"table_number,omitempty"`
	WaiterName   string           `json:"waiter_name,omitempty"`
	HotelName    string           `json:"hotel_name,omitempty"`
	CurrencyCode string           `json:"currency_code,omitempty"`
	Items        []BillLineDetail `json:"items,omitempty"`
}

type BillLineDetail struct {
	Name           string `json:"name"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	Quantity       int    `json:"quantity"`
	LineTotalMinor int64  `json:"line_total_minor"`
}
