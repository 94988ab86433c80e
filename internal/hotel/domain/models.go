package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// SubscriptionStatus gates access to the POS API surface.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
)

// Hotel is a tenant. All POS rows hang off a hotel ID and every
// query is scoped by it.
type Hotel struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null"`
	Slug string       `gorm:"type:text;not null;uniqueIndex"`

	Address *string `gorm:"type:text"`
	Phone   *string `gorm:"type:text"`

	// Rates are percentages (5 means 5%). Snapshotted onto orders
	// at placement so later edits never rewrite history.
	TaxRate           float64 `gorm:"column:tax_rate;type:numeric(6,3);not null;default:0"`
	ServiceChargeRate float64 `gorm:"column:service_charge_rate;type:numeric(6,3);not null;default:0"`

	CurrencyCode string `gorm:"column:currency_code;type:text;not null;default:'INR'"`

	SubscriptionStatus    SubscriptionStatus `gorm:"column:subscription_status;type:text;not null;default:'ACTIVE'"`
	SubscriptionExpiresAt *time.Time         `gorm:"column:subscription_expires_at"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Hotel) TableName() string { return "hotels" }

func (h *Hotel) Validate() error {
	if h.Name == "" {
		return ErrInvalidName
	}
	if h.TaxRate < 0 || h.ServiceChargeRate < 0 {
		return ErrInvalidTaxRate
	}
	return nil
}

// SubscriptionIsActive reports whether the hotel may use the POS API.
func (h *Hotel) SubscriptionIsActive(now time.Time) bool {
	if h.SubscriptionStatus != SubscriptionActive {
		return false
	}
	if h.SubscriptionExpiresAt != nil && h.SubscriptionExpiresAt.Before(now) {
		return false
	}
	return true
}
