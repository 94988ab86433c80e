package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, table *DiningTable) error
	List(ctx context.Context, hotelID snowflake.ID, status *Status) ([]DiningTable, error)
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*DiningTable, error)
	UpdateStatus(ctx context.Context, hotelID, id snowflake.ID, status Status) error
	Delete(ctx context.Context, hotelID, id snowflake.ID) error
}
