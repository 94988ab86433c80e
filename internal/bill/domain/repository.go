package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*Bill, error)
	FindByOrderID(ctx context.Context, hotelID, orderID snowflake.ID) (*Bill, error)
	List(ctx context.Context, hotelID snowflake.ID, status *Status) ([]Bill, error)

	// MarkPaid settles the bill only while it is still a draft. A
	// non-nil amountMinor rewrites the stored total at settlement.
	// Returns the number of rows changed so callers can detect a
	// concurrent payment that won the race.
	MarkPaid(ctx context.Context, hotelID, id snowflake.ID, mode PaymentMode, amountMinor *int64, at time.Time) (int64, error)
}
