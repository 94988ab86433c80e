package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/tavolo/pkg/db/pagination"
)

type Service interface {
	Place(ctx context.Context, req PlaceRequest) (*Response, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Response, error)
	List(ctx context.Context, req ListRequest, page pagination.Pagination) (*ListResponse, error)
	GetByID(ctx context.Context, id string) (*Response, error)
}

type ListResponse struct {
	Orders   []Response          `json:"orders"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type PlaceRequest struct {
	TableID string `json:"table_id"`

	// WaiterID defaults to the authenticated caller when empty.
	WaiterID string `json:"waiter_id,omitempty"`

	Note          *string            `json:"note,omitempty"`
	DiscountMinor int64              `json:"discount_minor,omitempty"`
	Items         []PlaceRequestItem `json:"items"`
}

type PlaceRequestItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Notes      *string `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type ListRequest struct {
	Status  string `form:"status"`
	TableID string `form:"table_id"`
}

type Response struct {
	ID           string  `json:"id"`
	TableID      string  `json:"table_id"`
	WaiterID     string  `json:"waiter_id"`
	WaiterName   string  `json:"waiter_name"`
	TicketNumber string  `json:"ticket_number"`
	Status       Status  `json:"status"`
	Note         *string `json:"note,omitempty"`

	SubtotalMinor      int64   `json:"subtotal_minor"`
	TaxRate            float64 `json:"tax_rate"`
	TaxMinor           int64   `json:"tax_minor"`
	ServiceChargeRate  float64 `json:"service_charge_rate"`
	ServiceChargeMinor int64   `json:"service_charge_minor"`
	DiscountMinor      int64   `json:"discount_minor"`
	TotalMinor         int64   `json:"total_minor"`

	Items []ItemResponse `json:"items"`

	BilledAt  *time.Time `json:"billed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ItemResponse struct {
	ID             string  `json:"id"`
	MenuItemID     string  `json:"menu_item_id"`
	Name           string  `json:"name"`
	UnitPriceMinor int64   `json:"unit_price_minor"`
	Quantity       int     `json:"quantity"`
	LineTotalMinor int64   `json:"line_total_minor"`
	Notes          *string `json:"notes,omitempty"`
}
