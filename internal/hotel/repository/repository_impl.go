package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) hoteldomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hotel *hoteldomain.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*hoteldomain.Hotel, error) {
	var hotel hoteldomain.Hotel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&hotel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*hoteldomain.Hotel, error) {
	var hotel hoteldomain.Hotel
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&hotel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) Update(ctx context.Context, hotel *hoteldomain.Hotel) error {
	return r.db.WithContext(ctx).
		Model(&hoteldomain.Hotel{}).
		Where("id = ?", hotel.ID).
		Updates(map[string]interface{}{
			"name":                hotel.Name,
			"address":             hotel.Address,
			"phone":               hotel.Phone,
			"tax_rate":            hotel.TaxRate,
			"service_charge_rate": hotel.ServiceChargeRate,
			"currency_code":       hotel.CurrencyCode,
			"subscription_status": hotel.SubscriptionStatus,
			"updated_at":          hotel.UpdatedAt,
		}).Error
}
