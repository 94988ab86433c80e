package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	"github.com/smallbiznis/tavolo/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) orderdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *orderdomain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		return tx.Create(&order.Items).Error
	})
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, filter orderdomain.ListRequest, page pagination.Pagination) ([]*orderdomain.Order, error) {
	stmt := r.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Preload("Items").
		Where("hotel_id = ?", hotelID)

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.TableID != "" {
		tableID, err := snowflake.ParseString(filter.TableID)
		if err != nil {
			return nil, orderdomain.ErrInvalidTable
		}
		stmt = stmt.Where("table_id = ?", tableID)
	}

	if page.PageToken != "" {
		if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil && cursor.ID != "" {
			if lastID, err := snowflake.ParseString(cursor.ID); err == nil {
				stmt = stmt.Where("id < ?", lastID)
			}
		}
	}

	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var orders []*orderdomain.Order
	err := stmt.Order("id desc").Limit(pageSize + 1).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatusFrom(ctx context.Context, hotelID, id snowflake.ID, from []orderdomain.Status, to orderdomain.Status, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("hotel_id = ? AND id = ? AND status IN ?", hotelID, id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": at,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) MarkBilled(ctx context.Context, hotelID, id snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Updates(map[string]interface{}{
			"billed_at":  at,
			"updated_at": at,
		}).Error
}
