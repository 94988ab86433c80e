package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Notifier is the write-side port used by other services. Delivery is
// fire-and-forget, failures never abort the caller's operation.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

type Service interface {
	Notifier
	List(ctx context.Context, req ListRequest) ([]Response, error)
	MarkRead(ctx context.Context, id string) error
}

// Event is a notification to deliver.
type Event struct {
	HotelID       snowflake.ID
	RecipientRole string
	RecipientID   *snowflake.ID
	Type          Type
	Title         string
	Body          string
	Metadata      map[string]interface{}
}

type ListRequest struct {
	Role       string `form:"role"`
	OnlyUnread bool   `form:"only_unread"`
	Limit      int    `form:"limit"`
}

type Response struct {
	ID            string                 `json:"id"`
	RecipientRole string                 `json:"recipient_role"`
	RecipientID   *string                `json:"recipient_id,omitempty"`
	Type          Type                   `json:"type"`
	Title         string                 `json:"title"`
	Body          string                 `json:"body"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	IsRead        bool                   `json:"is_read"`
	CreatedAt     time.Time              `json:"created_at"`
}
