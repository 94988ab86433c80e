package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, hotel *Hotel) error
	FindByID(ctx context.Context, id snowflake.ID) (*Hotel, error)
	FindBySlug(ctx context.Context, slug string) (*Hotel, error)
	Update(ctx context.Context, hotel *Hotel) error
}
