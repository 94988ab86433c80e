package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  tabledomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  tabledomain.Repository
}

func NewService(p serviceParams) tabledomain.Service {
	return &Service{
		log:   p.Log.Named("table.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req tabledomain.CreateRequest) (*tabledomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, tabledomain.ErrInvalidHotel
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, tabledomain.ErrInvalidNumber
	}

	capacity := req.Capacity
	if capacity < 1 {
		capacity = 2
	}

	now := time.Now().UTC()
	table := &tabledomain.DiningTable{
		ID:        s.genID.Generate(),
		HotelID:   hotelID,
		Number:    number,
		Capacity:  capacity,
		Status:    tabledomain.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, table); err != nil {
		return nil, err
	}

	resp := toResponse(table)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req tabledomain.ListRequest) ([]tabledomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, tabledomain.ErrInvalidHotel
	}

	var status *tabledomain.Status
	if strings.TrimSpace(req.Status) != "" {
		parsed, err := tabledomain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	tables, err := s.repo.List(ctx, hotelID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]tabledomain.Response, 0, len(tables))
	for _, table := range tables {
		resp = append(resp, toResponse(&table))
	}
	return resp, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status string) (*tabledomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, tabledomain.ErrInvalidHotel
	}

	tableID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, tabledomain.ErrInvalidID
	}

	parsed, err := tabledomain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	table, err := s.repo.FindByID(ctx, hotelID, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, tabledomain.ErrNotFound
	}

	if err := s.repo.UpdateStatus(ctx, hotelID, tableID, parsed); err != nil {
		return nil, err
	}

	table.Status = parsed
	resp := toResponse(table)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return tabledomain.ErrInvalidHotel
	}

	tableID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tabledomain.ErrInvalidID
	}

	table, err := s.repo.FindByID(ctx, hotelID, tableID)
	if err != nil {
		return err
	}
	if table == nil {
		return tabledomain.ErrNotFound
	}

	return s.repo.Delete(ctx, hotelID, tableID)
}

func toResponse(table *tabledomain.DiningTable) tabledomain.Response {
	return tabledomain.Response{
		ID:        table.ID.String(),
		Number:    table.Number,
		Capacity:  table.Capacity,
		Status:    table.Status,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
}
