package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var (
	ErrInvalidHotel = errors.New("invalid_hotel")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)

// Recipient roles mirror staff roles. Kept as plain strings so the
// notification store stays decoupled from account management.
const (
	RoleKitchen = "KITCHEN"
	RoleWaiter  = "WAITER"
	RoleManager = "MANAGER"
)

// Type tags the event a notification was born from.
type Type string

const (
	TypeOrderPlaced Type = "ORDER_PLACED"
	TypeOrderReady  Type = "ORDER_READY"
	TypeBillPaid    Type = "BILL_PAID"
)

// Notification is an in-app message for hotel staff. Either targeted
// at one account or broadcast to a role within the hotel.
type Notification struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`

	RecipientRole string        `gorm:"column:recipient_role;type:text;not null"`
	RecipientID   *snowflake.ID `gorm:"column:recipient_id;index"`

	Type  Type   `gorm:"type:text;not null"`
	Title string `gorm:"type:text;not null"`
	Body  string `gorm:"type:text;not null"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	IsRead    bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Notification) TableName() string { return "notifications" }
