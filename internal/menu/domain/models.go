package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Category groups menu items for display ordering.
type Category struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`

	Name      string `gorm:"type:text;not null"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "menu_categories" }

// Item is a sellable menu entry. Price is integer minor units and is
// snapshotted onto order lines at placement.
type Item struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	HotelID    snowflake.ID `gorm:"column:hotel_id;not null;index"`
	CategoryID snowflake.ID `gorm:"column:category_id;not null;index"`

	Name        string  `gorm:"type:text;not null"`
	Description *string `gorm:"type:text"`

	PriceMinor  int64 `gorm:"column:price_minor;not null"`
	IsAvailable bool  `gorm:"column:is_available;not null;default:true"`
	IsVeg       bool  `gorm:"column:is_veg;not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Item) TableName() string { return "menu_items" }

func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if i.PriceMinor < 0 {
		return ErrInvalidPrice
	}
	if i.CategoryID == 0 {
		return ErrInvalidCategory
	}
	return nil
}
