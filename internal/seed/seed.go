package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"github.com/smallbiznis/tavolo/internal/staff/password"
	"gorm.io/gorm"
)

const (
	defaultHotelName     = "Demo Hotel"
	defaultAdminEmail    = "admin@tavolo.local"
	defaultAdminPassword = "admin"
	defaultAdminName     = "Tavolo Admin"
)

// EnsureDefaultHotelAndAdmin seeds a demo hotel and its admin account
// so a fresh self-hosted install is immediately usable.
func EnsureDefaultHotelAndAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hotel, err := ensureHotelTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureAdminTx(ctx, tx, node, hotel.ID)
	})
}

func ensureHotelTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*hoteldomain.Hotel, error) {
	hotelSlug := slug.Make(defaultHotelName)

	var hotel hoteldomain.Hotel
	err := tx.WithContext(ctx).
		Where("slug = ?", hotelSlug).
		First(&hotel).Error
	if err == nil {
		return &hotel, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	hotel = hoteldomain.Hotel{
		ID:                 node.Generate(),
		Name:               defaultHotelName,
		Slug:               hotelSlug,
		TaxRate:            5,
		ServiceChargeRate:  0,
		CurrencyCode:       "INR",
		SubscriptionStatus: hoteldomain.SubscriptionActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := tx.WithContext(ctx).Create(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func ensureAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, hotelID snowflake.ID) error {
	var user staffdomain.StaffUser
	err := tx.WithContext(ctx).
		Where("email = ?", defaultAdminEmail).
		First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = staffdomain.StaffUser{
		ID:           node.Generate(),
		HotelID:      hotelID,
		Name:         defaultAdminName,
		Email:        strings.ToLower(defaultAdminEmail),
		PasswordHash: hashed,
		Role:         staffdomain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&user).Error
}
