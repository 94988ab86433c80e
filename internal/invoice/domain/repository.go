package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByBillID(ctx context.Context, hotelID, billID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, hotelID snowflake.ID) ([]Invoice, error)
}
