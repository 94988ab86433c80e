package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/tavolo/internal/staffctx"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*staffctx.Identity, error)
	Me(ctx context.Context) (*Profile, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Staff     Profile   `json:"staff"`
}

type Profile struct {
	ID      string `json:"id"`
	HotelID string `json:"hotel_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}
