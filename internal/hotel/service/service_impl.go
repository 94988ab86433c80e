package service

import (
	"context"
	"strings"
	"time"

	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log  *zap.Logger
	Repo hoteldomain.Repository
}

type Service struct {
	log  *zap.Logger
	repo hoteldomain.Repository
}

func NewService(p serviceParams) hoteldomain.Service {
	return &Service{
		log:  p.Log.Named("hotel.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (*hoteldomain.Response, error) {
	hotel, err := s.currentHotel(ctx)
	if err != nil {
		return nil, err
	}

	resp := toResponse(hotel)
	return &resp, nil
}

func (s *Service) UpdateTaxConfig(ctx context.Context, req hoteldomain.UpdateTaxConfigRequest) (*hoteldomain.Response, error) {
	hotel, err := s.currentHotel(ctx)
	if err != nil {
		return nil, err
	}

	if req.TaxRate != nil {
		if *req.TaxRate < 0 {
			return nil, hoteldomain.ErrInvalidTaxRate
		}
		hotel.TaxRate = *req.TaxRate
	}
	if req.ServiceChargeRate != nil {
		if *req.ServiceChargeRate < 0 {
			return nil, hoteldomain.ErrInvalidTaxRate
		}
		hotel.ServiceChargeRate = *req.ServiceChargeRate
	}
	if req.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
		if code != "" {
			hotel.CurrencyCode = code
		}
	}

	hotel.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, hotel); err != nil {
		return nil, err
	}

	s.log.Info("hotel tax config updated",
		zap.String("hotel_id", hotel.ID.String()),
		zap.Float64("tax_rate", hotel.TaxRate),
		zap.Float64("service_charge_rate", hotel.ServiceChargeRate),
	)

	resp := toResponse(hotel)
	return &resp, nil
}

// CheckSubscription returns ErrSubscriptionLock when the hotel may not
// use the POS API.
func (s *Service) CheckSubscription(ctx context.Context) error {
	hotel, err := s.currentHotel(ctx)
	if err != nil {
		return err
	}
	if !hotel.SubscriptionIsActive(time.Now().UTC()) {
		return hoteldomain.ErrSubscriptionLock
	}
	return nil
}

func (s *Service) currentHotel(ctx context.Context) (*hoteldomain.Hotel, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, hoteldomain.ErrInvalidHotel
	}

	hotel, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, hoteldomain.ErrNotFound
	}
	return hotel, nil
}

func toResponse(hotel *hoteldomain.Hotel) hoteldomain.Response {
	return hoteldomain.Response{
		ID:                 hotel.ID.String(),
		Name:               hotel.Name,
		Slug:               hotel.Slug,
		Address:            hotel.Address,
		Phone:              hotel.Phone,
		TaxRate:            hotel.TaxRate,
		ServiceChargeRate:  hotel.ServiceChargeRate,
		CurrencyCode:       hotel.CurrencyCode,
		SubscriptionStatus: hotel.SubscriptionStatus,
		CreatedAt:          hotel.CreatedAt,
		UpdatedAt:          hotel.UpdatedAt,
	}
}
