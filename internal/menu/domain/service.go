package domain

import (
	"context"
	"time"
)

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)

	CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error)
	ListItems(ctx context.Context, req ListItemsRequest) ([]ItemResponse, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
}

type CreateCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type CreateItemRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceMinor  int64   `json:"price_minor"`
	IsVeg       bool    `json:"is_veg"`
}

type UpdateItemRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceMinor  *int64  `json:"price_minor,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	IsVeg       *bool   `json:"is_veg,omitempty"`
}

type ListItemsRequest struct {
	CategoryID    string `form:"category_id"`
	OnlyAvailable bool   `form:"only_available"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	IsAvailable bool      `json:"is_available"`
	IsVeg       bool      `json:"is_veg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
