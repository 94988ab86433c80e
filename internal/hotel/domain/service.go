package domain

import (
	"context"
	"time"
)

type Service interface {
	Get(ctx context.Context) (*Response, error)
	UpdateTaxConfig(ctx context.Context, req UpdateTaxConfigRequest) (*Response, error)
	CheckSubscription(ctx context.Context) error
}

type UpdateTaxConfigRequest struct {
	TaxRate           *float64 `json:"tax_rate,omitempty"`
	ServiceChargeRate *float64 `json:"service_charge_rate,omitempty"`
	CurrencyCode      *string  `json:"currency_code,omitempty"`
}

type Response struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Slug               string             `json:"slug"`
	Address            *string            `json:"address,omitempty"`
	Phone              *string            `json:"phone,omitempty"`
	TaxRate            float64            `json:"tax_rate"`
	ServiceChargeRate  float64            `json:"service_charge_rate"`
	CurrencyCode       string             `json:"currency_code"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
