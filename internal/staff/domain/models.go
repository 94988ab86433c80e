package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role controls which endpoints a staff account may call.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleWaiter     Role = "WAITER"
	RoleKitchen    Role = "KITCHEN"
)

// ParseRole normalizes free-form role input. Unknown values are rejected.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleWaiter, RoleKitchen:
		return role, nil
	}
	return "", ErrInvalidRole
}

// StaffUser is a hotel-scoped login account.
type StaffUser struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`

	Name         string `gorm:"type:text;not null"`
	Email        string `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;type:text;not null"`
	Role         Role   `gorm:"type:text;not null"`

	IsActive bool `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (StaffUser) TableName() string { return "staff_users" }

// StaffSession is an opaque bearer token with a TTL. Logout revokes it.
type StaffSession struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	StaffID snowflake.ID `gorm:"column:staff_id;not null;index"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index"`

	Token     string     `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null"`
	RevokedAt *time.Time `gorm:"column:revoked_at"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (StaffSession) TableName() string { return "staff_sessions" }

// Alive reports whether the session is usable at the given instant.
func (s *StaffSession) Alive(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return s.ExpiresAt.After(now)
}
