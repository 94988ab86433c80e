package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status tracks table occupancy on the floor.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusReserved  Status = "RESERVED"
)

// ParseStatus normalizes free-form status input. Unknown values are rejected.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// DiningTable is a physical table in the hotel restaurant.
type DiningTable struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_dining_tables_hotel_number,unique"`

	Number   string `gorm:"type:text;not null;index:idx_dining_tables_hotel_number,unique"`
	Capacity int    `gorm:"not null;default:2"`
	Status   Status `gorm:"type:text;not null;default:'AVAILABLE'"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DiningTable) TableName() string { return "dining_tables" }
