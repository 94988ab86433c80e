package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
)

type createMenuCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type createMenuItemRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceMinor  int64   `json:"price_minor"`
	IsVeg       bool    `json:"is_veg"`
}

type updateMenuItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceMinor  *int64  `json:"price_minor,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	IsVeg       *bool   `json:"is_veg,omitempty"`
}

func (s *Server) ListMenuCategories(c *gin.Context) {
	resp, err := s.menuSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateMenuCategory(c *gin.Context) {
	var req createMenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.menuSvc.CreateCategory(c.Request.Context(), menudomain.CreateCategoryRequest{
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListMenuItems(c *gin.Context) {
	var query struct {
		CategoryID    string `form:"category_id"`
		OnlyAvailable string `form:"only_available"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	onlyAvailable, err := parseOptionalBool(query.OnlyAvailable)
	if err != nil {
		AbortWithError(c, newValidationError("only_available", "invalid_only_available", "invalid only_available"))
		return
	}

	resp, err := s.menuSvc.ListItems(c.Request.Context(), menudomain.ListItemsRequest{
		CategoryID:    strings.TrimSpace(query.CategoryID),
		OnlyAvailable: onlyAvailable != nil && *onlyAvailable,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateMenuItem(c *gin.Context) {
	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.menuSvc.CreateItem(c.Request.Context(), menudomain.CreateItemRequest{
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		IsVeg:       req.IsVeg,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateMenuItem(c *gin.Context) {
	var req updateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.menuSvc.UpdateItem(c.Request.Context(), menudomain.UpdateItemRequest{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		IsAvailable: req.IsAvailable,
		IsVeg:       req.IsVeg,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	if err := s.menuSvc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}
