package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) billdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bill *billdomain.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*billdomain.Bill, error) {
	var bill billdomain.Bill
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *repository) FindByOrderID(ctx context.Context, hotelID, orderID snowflake.ID) (*billdomain.Bill, error) {
	var bill billdomain.Bill
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND order_id = ?", hotelID, orderID).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, status *billdomain.Status) ([]billdomain.Bill, error) {
	stmt := r.db.WithContext(ctx).
		Model(&billdomain.Bill{}).
		Where("hotel_id = ?", hotelID)

	if status != nil {
		stmt = stmt.Where("status = ?", *status)
	}

	var bills []billdomain.Bill
	if err := stmt.Order("created_at desc").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repository) MarkPaid(ctx context.Context, hotelID, id snowflake.ID, mode billdomain.PaymentMode, amountMinor *int64, at time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":       billdomain.StatusPaid,
		"payment_mode": mode,
		"paid_at":      at,
		"updated_at":   at,
	}
	if amountMinor != nil {
		updates["total_minor"] = *amountMinor
	}
	result := r.db.WithContext(ctx).
		Model(&billdomain.Bill{}).
		Where("hotel_id = ? AND id = ? AND status = ?", hotelID, id, billdomain.StatusDraft).
		Updates(updates)
	return result.RowsAffected, result.Error
}
