package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the kitchen lifecycle of an order.
//
// PENDING and PREPARING and READY are working states. COMPLETED and
// CANCELLED are terminal, once an order lands in either it is sealed.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus normalizes free-form status input. Unknown values are rejected.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Terminal reports whether the status seals the order.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is a placed kitchen order. All money fields are integer minor
// units, rates are percentages snapshotted from the hotel at placement.
type Order struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`
	TableID snowflake.ID `gorm:"column:table_id;not null;index"`

	WaiterID   snowflake.ID `gorm:"column:waiter_id;not null;index"`
	WaiterName string       `gorm:"column:waiter_name;type:text;not null"`

	TicketNumber string `gorm:"column:ticket_number;type:text;not null;uniqueIndex"`
	Status       Status `gorm:"type:text;not null;default:'PENDING'"`

	SubtotalMinor      int64   `gorm:"column:subtotal_minor;not null"`
	TaxRate            float64 `gorm:"column:tax_rate;type:numeric(6,3);not null"`
	TaxMinor           int64   `gorm:"column:tax_minor;not null"`
	ServiceChargeRate  float64 `gorm:"column:service_charge_rate;type:numeric(6,3);not null"`
	ServiceChargeMinor int64   `gorm:"column:service_charge_minor;not null"`
	DiscountMinor      int64   `gorm:"column:discount_minor;not null;default:0"`
	TotalMinor         int64   `gorm:"column:total_minor;not null"`

	Note     *string    `gorm:"type:text"`
	BilledAt *time.Time `gorm:"column:billed_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a priced line. Name and unit price are snapshots taken
// at placement, menu edits never rewrite placed orders.
type OrderItem struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	OrderID snowflake.ID `gorm:"column:order_id;not null;index"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`

	MenuItemID snowflake.ID `gorm:"column:menu_item_id;not null"`
	Name       string       `gorm:"type:text;not null"`

	UnitPriceMinor int64 `gorm:"column:unit_price_minor;not null"`
	Quantity       int   `gorm:"not null"`
	LineTotalMinor int64 `gorm:"column:line_total_minor;not null"`

	// Per-line kitchen instruction, snapshotted at placement.
	Notes *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OrderItem) TableName() string { return "order_items" }
