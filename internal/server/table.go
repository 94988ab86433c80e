package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
)

type createTableRequest struct {
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
}

type setTableStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) ListTables(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tableSvc.List(c.Request.Context(), tabledomain.ListRequest{
		Status: query.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tableSvc.Create(c.Request.Context(), tabledomain.CreateRequest{
		Number:   req.Number,
		Capacity: req.Capacity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) SetTableStatus(c *gin.Context) {
	var req setTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tableSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTable(c *gin.Context) {
	if err := s.tableSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}
