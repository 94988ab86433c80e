package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateUser(ctx context.Context, user *StaffUser) error
	FindUserByID(ctx context.Context, id snowflake.ID) (*StaffUser, error)
	FindUserByEmail(ctx context.Context, email string) (*StaffUser, error)
	ListUsers(ctx context.Context, hotelID snowflake.ID) ([]StaffUser, error)

	CreateSession(ctx context.Context, session *StaffSession) error
	FindSessionByToken(ctx context.Context, token string) (*StaffSession, error)
	RevokeSession(ctx context.Context, token string, at time.Time) error
}
