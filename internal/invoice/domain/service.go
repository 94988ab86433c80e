package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Recorder is the write-side port used by bill settlement.
type Recorder interface {
	Record(ctx context.Context, req RecordRequest) (*Invoice, error)
}

type Service interface {
	Recorder
	List(ctx context.Context) ([]Response, error)
}

type RecordRequest struct {
	HotelID     snowflake.ID
	BillID      snowflake.ID
	OrderID     snowflake.ID
	AmountMinor int64
	PaymentMode string
	IssuedAt    time.Time
}

type Response struct {
	ID            string    `json:"id"`
	BillID        string    `json:"bill_id"`
	OrderID       string    `json:"order_id"`
	InvoiceNumber string    `json:"invoice_number"`
	AmountMinor   int64     `json:"amount_minor"`
	PaymentMode   string    `json:"payment_mode"`
	IssuedAt      time.Time `json:"issued_at"`
}
