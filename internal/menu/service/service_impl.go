package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  menudomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  menudomain.Repository
}

func NewService(p serviceParams) menudomain.Service {
	return &Service{
		log:   p.Log.Named("menu.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateCategory(ctx context.Context, req menudomain.CreateCategoryRequest) (*menudomain.CategoryResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, menudomain.ErrInvalidHotel
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, menudomain.ErrInvalidName
	}

	now := time.Now().UTC()
	category := &menudomain.Category{
		ID:        s.genID.Generate(),
		HotelID:   hotelID,
		Name:      name,
		SortOrder: req.SortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]menudomain.CategoryResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, menudomain.ErrInvalidHotel
	}

	categories, err := s.repo.ListCategories(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	resp := make([]menudomain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, toCategoryResponse(&category))
	}
	return resp, nil
}

func (s *Service) CreateItem(ctx context.Context, req menudomain.CreateItemRequest) (*menudomain.ItemResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, menudomain.ErrInvalidHotel
	}

	categoryID, err := snowflake.ParseString(strings.TrimSpace(req.CategoryID))
	if err != nil {
		return nil, menudomain.ErrInvalidCategory
	}

	category, err := s.repo.FindCategoryByID(ctx, hotelID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, menudomain.ErrInvalidCategory
	}

	description := strings.TrimSpace(ptrToString(req.Description))
	var descriptionPtr *string
	if description != "" {
		descriptionPtr = &description
	}

	now := time.Now().UTC()
	item := &menudomain.Item{
		ID:          s.genID.Generate(),
		HotelID:     hotelID,
		CategoryID:  categoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: descriptionPtr,
		PriceMinor:  req.PriceMinor,
		IsAvailable: true,
		IsVeg:       req.IsVeg,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *Service) ListItems(ctx context.Context, req menudomain.ListItemsRequest) ([]menudomain.ItemResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, menudomain.ErrInvalidHotel
	}

	items, err := s.repo.ListItems(ctx, hotelID, req)
	if err != nil {
		return nil, err
	}

	resp := make([]menudomain.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(&item))
	}
	return resp, nil
}

func (s *Service) UpdateItem(ctx context.Context, req menudomain.UpdateItemRequest) (*menudomain.ItemResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, menudomain.ErrInvalidHotel
	}

	itemID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, menudomain.ErrInvalidID
	}

	item, err := s.repo.FindItemByID(ctx, hotelID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, menudomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, menudomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			item.Description = nil
		} else {
			item.Description = &description
		}
	}
	if req.PriceMinor != nil {
		if *req.PriceMinor < 0 {
			return nil, menudomain.ErrInvalidPrice
		}
		item.PriceMinor = *req.PriceMinor
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return menudomain.ErrInvalidHotel
	}

	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return menudomain.ErrInvalidID
	}

	item, err := s.repo.FindItemByID(ctx, hotelID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return menudomain.ErrNotFound
	}

	return s.repo.DeleteItem(ctx, hotelID, itemID)
}

func toCategoryResponse(category *menudomain.Category) menudomain.CategoryResponse {
	return menudomain.CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		SortOrder: category.SortOrder,
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
	}
}

func toItemResponse(item *menudomain.Item) menudomain.ItemResponse {
	return menudomain.ItemResponse{
		ID:          item.ID.String(),
		CategoryID:  item.CategoryID.String(),
		Name:        item.Name,
		Description: item.Description,
		PriceMinor:  item.PriceMinor,
		IsAvailable: item.IsAvailable,
		IsVeg:       item.IsVeg,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
