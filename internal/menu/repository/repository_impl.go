package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) menudomain.Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(ctx context.Context, category *menudomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) ListCategories(ctx context.Context, hotelID snowflake.ID) ([]menudomain.Category, error) {
	var categories []menudomain.Category
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_active = ?", hotelID, true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, hotelID, id snowflake.ID) (*menudomain.Category, error) {
	var category menudomain.Category
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, category *menudomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&menudomain.Category{}).
		Where("hotel_id = ? AND id = ?", category.HotelID, category.ID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"sort_order": category.SortOrder,
			"is_active":  category.IsActive,
			"updated_at": category.UpdatedAt,
		}).Error
}

func (r *repository) CreateItem(ctx context.Context, item *menudomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) ListItems(ctx context.Context, hotelID snowflake.ID, filter menudomain.ListItemsRequest) ([]menudomain.Item, error) {
	stmt := r.db.WithContext(ctx).
		Model(&menudomain.Item{}).
		Where("hotel_id = ?", hotelID)

	if filter.CategoryID != "" {
		categoryID, err := snowflake.ParseString(filter.CategoryID)
		if err != nil {
			return nil, menudomain.ErrInvalidCategory
		}
		stmt = stmt.Where("category_id = ?", categoryID)
	}
	if filter.OnlyAvailable {
		stmt = stmt.Where("is_available = ?", true)
	}

	var items []menudomain.Item
	if err := stmt.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindItemByID(ctx context.Context, hotelID, id snowflake.ID) (*menudomain.Item, error) {
	var item menudomain.Item
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemsByIDs(ctx context.Context, hotelID snowflake.ID, ids []snowflake.ID) ([]menudomain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []menudomain.Item
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id IN ?", hotelID, ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *menudomain.Item) error {
	return r.db.WithContext(ctx).
		Model(&menudomain.Item{}).
		Where("hotel_id = ? AND id = ?", item.HotelID, item.ID).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"description":  item.Description,
			"price_minor":  item.PriceMinor,
			"is_available": item.IsAvailable,
			"is_veg":       item.IsVeg,
			"updated_at":   item.UpdatedAt,
		}).Error
}

func (r *repository) DeleteItem(ctx context.Context, hotelID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Delete(&menudomain.Item{}).Error
}
