package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) tabledomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, table *tabledomain.DiningTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, status *tabledomain.Status) ([]tabledomain.DiningTable, error) {
	stmt := r.db.WithContext(ctx).
		Model(&tabledomain.DiningTable{}).
		Where("hotel_id = ?", hotelID)

	if status != nil {
		stmt = stmt.Where("status = ?", *status)
	}

	var tables []tabledomain.DiningTable
	if err := stmt.Order("number ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*tabledomain.DiningTable, error) {
	var table tabledomain.DiningTable
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *repository) UpdateStatus(ctx context.Context, hotelID, id snowflake.ID, status tabledomain.Status) error {
	return r.db.WithContext(ctx).
		Model(&tabledomain.DiningTable{}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) Delete(ctx context.Context, hotelID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Delete(&tabledomain.DiningTable{}).Error
}
