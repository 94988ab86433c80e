package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/tavolo/internal/config"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"github.com/smallbiznis/tavolo/internal/staff/password"
	staffrepository "github.com/smallbiznis/tavolo/internal/staff/repository"
	"github.com/smallbiznis/tavolo/internal/staffctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type staffFixture struct {
	svc     staffdomain.Service
	db      *gorm.DB
	node    *snowflake.Node
	hotelID snowflake.ID
	staffID snowflake.ID
}

func setupStaffService(t *testing.T) *staffFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&staffdomain.StaffUser{},
		&staffdomain.StaffSession{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &staffFixture{
		db:      db,
		node:    node,
		hotelID: node.Generate(),
		staffID: node.Generate(),
	}

	hash, err := password.Hash("s3cret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&staffdomain.StaffUser{
		ID:           f.staffID,
		HotelID:      f.hotelID,
		Name:         "Asha",
		Email:        "asha@lakeview.example",
		PasswordHash: hash,
		Role:         staffdomain.RoleWaiter,
		IsActive:     true,
	}).Error)

	f.svc = NewService(serviceParams{
		Cfg:   config.Config{SessionTTLHours: 1},
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  staffrepository.NewRepository(db),
	})

	return f
}

func TestLoginIssuesSession(t *testing.T) {
	f := setupStaffService(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "  Asha@Lakeview.example ",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
	assert.Equal(t, staffdomain.RoleWaiter, resp.Staff.Role)

	identity, err := f.svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, f.staffID, identity.StaffID)
	assert.Equal(t, f.hotelID, identity.HotelID)
	assert.Equal(t, "WAITER", identity.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setupStaffService(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "asha@lakeview.example",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, staffdomain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "nobody@lakeview.example",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, staffdomain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, staffdomain.LoginRequest{Password: "s3cret"})
	assert.ErrorIs(t, err, staffdomain.ErrInvalidEmail)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	f := setupStaffService(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(&staffdomain.StaffUser{}).
		Where("id = ?", f.staffID).
		Update("is_active", false).Error)

	_, err := f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "asha@lakeview.example",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, staffdomain.ErrInactiveAccount)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := setupStaffService(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "asha@lakeview.example",
		Password: "s3cret",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.Token))

	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, staffdomain.ErrSessionExpired)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	f := setupStaffService(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, staffdomain.LoginRequest{
		Email:    "asha@lakeview.example",
		Password: "s3cret",
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&staffdomain.StaffSession{}).
		Where("token = ?", resp.Token).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, staffdomain.ErrSessionExpired)

	_, err = f.svc.Authenticate(ctx, "unknown-token")
	assert.ErrorIs(t, err, staffdomain.ErrInvalidCredentials)
}

func TestMeRequiresIdentity(t *testing.T) {
	f := setupStaffService(t)

	_, err := f.svc.Me(context.Background())
	assert.ErrorIs(t, err, staffdomain.ErrInvalidCredentials)

	ctx := staffctx.WithIdentity(context.Background(), staffctx.Identity{
		StaffID: f.staffID,
		HotelID: f.hotelID,
		Name:    "Asha",
		Role:    "WAITER",
	})
	profile, err := f.svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "asha@lakeview.example", profile.Email)
}
