package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/config"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"github.com/smallbiznis/tavolo/internal/staff/password"
	"github.com/smallbiznis/tavolo/internal/staffctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  staffdomain.Repository
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	repo       staffdomain.Repository
	sessionTTL time.Duration
}

func NewService(p serviceParams) staffdomain.Service {
	ttl := time.Duration(p.Cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		log:        p.Log.Named("staff.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		sessionTTL: ttl,
	}
}

func (s *Service) Login(ctx context.Context, req staffdomain.LoginRequest) (*staffdomain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, staffdomain.ErrInvalidEmail
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(user.PasswordHash, req.Password) {
		return nil, staffdomain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, staffdomain.ErrInactiveAccount
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &staffdomain.StaffSession{
		ID:        s.genID.Generate(),
		StaffID:   user.ID,
		HotelID:   user.HotelID,
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("staff login",
		zap.String("staff_id", user.ID.String()),
		zap.String("hotel_id", user.HotelID.String()),
		zap.String("role", string(user.Role)),
	)

	return &staffdomain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Staff:     toProfile(user),
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return staffdomain.ErrInvalidCredentials
	}
	return s.repo.RevokeSession(ctx, token, time.Now().UTC())
}

// Authenticate resolves a bearer token to a staff identity.
func (s *Service) Authenticate(ctx context.Context, token string) (*staffctx.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, staffdomain.ErrInvalidCredentials
	}

	session, err := s.repo.FindSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, staffdomain.ErrInvalidCredentials
	}
	if !session.Alive(time.Now().UTC()) {
		return nil, staffdomain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, session.StaffID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, staffdomain.ErrInactiveAccount
	}

	return &staffctx.Identity{
		StaffID: user.ID,
		HotelID: user.HotelID,
		Name:    user.Name,
		Role:    string(user.Role),
	}, nil
}

func (s *Service) Me(ctx context.Context) (*staffdomain.Profile, error) {
	identity, ok := staffctx.IdentityFromContext(ctx)
	if !ok {
		return nil, staffdomain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByID(ctx, identity.StaffID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, staffdomain.ErrNotFound
	}

	profile := toProfile(user)
	return &profile, nil
}

func toProfile(user *staffdomain.StaffUser) staffdomain.Profile {
	return staffdomain.Profile{
		ID:      user.ID.String(),
		HotelID: user.HotelID.String(),
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
