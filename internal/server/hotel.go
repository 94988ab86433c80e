package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
)

type updateHotelTaxConfigRequest struct {
	TaxRate           *float64 `json:"tax_rate,omitempty"`
	ServiceChargeRate *float64 `json:"service_charge_rate,omitempty"`
	CurrencyCode      *string  `json:"currency_code,omitempty"`
}

func (s *Server) GetHotel(c *gin.Context) {
	resp, err := s.hotelSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateHotelTaxConfig(c *gin.Context) {
	var req updateHotelTaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.UpdateTaxConfig(c.Request.Context(), hoteldomain.UpdateTaxConfigRequest{
		TaxRate:           req.TaxRate,
		ServiceChargeRate: req.ServiceChargeRate,
		CurrencyCode:      req.CurrencyCode,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
