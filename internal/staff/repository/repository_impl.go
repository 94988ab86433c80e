package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) staffdomain.Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *staffdomain.StaffUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) FindUserByID(ctx context.Context, id snowflake.ID) (*staffdomain.StaffUser, error) {
	var user staffdomain.StaffUser
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*staffdomain.StaffUser, error) {
	var user staffdomain.StaffUser
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) ListUsers(ctx context.Context, hotelID snowflake.ID) ([]staffdomain.StaffUser, error) {
	var users []staffdomain.StaffUser
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) CreateSession(ctx context.Context, session *staffdomain.StaffSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) FindSessionByToken(ctx context.Context, token string) (*staffdomain.StaffSession, error) {
	var session staffdomain.StaffSession
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) RevokeSession(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&staffdomain.StaffSession{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", at).Error
}
