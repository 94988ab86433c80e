package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	SetStatus(ctx context.Context, id string, status string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
}

type ListRequest struct {
	Status string `form:"status"`
}

type Response struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Capacity  int       `json:"capacity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
