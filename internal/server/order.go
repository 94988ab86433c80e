package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	"github.com/smallbiznis/tavolo/pkg/db/pagination"
)

type placeOrderRequest struct {
	TableID       string                  `json:"table_id"`
	WaiterID      string                  `json:"waiter_id"`
	Note          *string                 `json:"note,omitempty"`
	DiscountMinor int64                   `json:"discount_minor"`
	Items         []placeOrderRequestItem `json:"items"`
}

type placeOrderRequestItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Notes      *string `json:"notes,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]orderdomain.PlaceRequestItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdomain.PlaceRequestItem{
			MenuItemID: strings.TrimSpace(item.MenuItemID),
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}

	resp, err := s.orderSvc.Place(c.Request.Context(), orderdomain.PlaceRequest{
		TableID:       strings.TrimSpace(req.TableID),
		WaiterID:      strings.TrimSpace(req.WaiterID),
		Note:          req.Note,
		DiscountMinor: req.DiscountMinor,
		Items:         items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		Status    string `form:"status"`
		TableID   string `form:"table_id"`
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
		Status:  query.Status,
		TableID: query.TableID,
	}, pagination.Pagination{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Orders, "page_info": resp.PageInfo})
}

func (s *Server) GetOrder(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), orderdomain.UpdateStatusRequest{
		ID:     c.Param("id"),
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
