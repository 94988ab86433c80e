package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/pkg/db/pagination"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*Order, error)

	// List fetches one row beyond the page size so the caller can
	// detect whether more pages exist.
	List(ctx context.Context, hotelID snowflake.ID, filter ListRequest, page pagination.Pagination) ([]*Order, error)

	// UpdateStatusFrom flips status only when the current row still
	// matches one of the given source states. Returns the number of
	// rows changed so callers can detect lost races.
	UpdateStatusFrom(ctx context.Context, hotelID, id snowflake.ID, from []Status, to Status, at time.Time) (int64, error)

	// MarkBilled stamps the moment the order's bill was settled.
	MarkBilled(ctx context.Context, hotelID, id snowflake.ID, at time.Time) error
}
