package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	List(ctx context.Context, hotelID snowflake.ID, filter ListRequest) ([]Notification, error)
	MarkRead(ctx context.Context, hotelID, id snowflake.ID) error
}
