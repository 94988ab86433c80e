package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) notificationdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, notification *notificationdomain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, filter notificationdomain.ListRequest) ([]notificationdomain.Notification, error) {
	stmt := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("hotel_id = ?", hotelID)

	if filter.Role != "" {
		stmt = stmt.Where("recipient_role = ?", filter.Role)
	}
	if filter.OnlyUnread {
		stmt = stmt.Where("is_read = ?", false)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var notifications []notificationdomain.Notification
	err := stmt.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, hotelID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Update("is_read", true).Error
}
