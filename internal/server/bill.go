package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"github.com/smallbiznis/tavolo/internal/providers/pdf"
)

type payBillRequest struct {
	PaymentMode string `json:"payment_mode"`
	AmountMinor *int64 `json:"amount_minor"`
}

func (s *Server) ListBills(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.List(c.Request.Context(), billdomain.ListRequest{
		Status: query.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBill(c *gin.Context) {
	resp, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PayBill(c *gin.Context) {
	var req payBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.Pay(c.Request.Context(), billdomain.PayRequest{
		ID:          c.Param("id"),
		PaymentMode: req.PaymentMode,
		AmountMinor: req.AmountMinor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// BillReceipt renders the printable PDF for a paid bill.
func (s *Server) BillReceipt(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if detail.Status != billdomain.StatusPaid {
		AbortWithError(c, billdomain.ErrBillNotPaid)
		return
	}

	reader, err := s.receipts.Render(c.Request.Context(), s.receiptData(detail))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", detail.BillNumber))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (s *Server) receiptData(detail *billdomain.DetailResponse) pdf.ReceiptData {
	symbol := s.pos.Current().Receipt.CurrencySymbol

	items := make([]pdf.ReceiptLine, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, pdf.ReceiptLine{
			Name:      item.Name,
			Qty:       item.Quantity,
			UnitPrice: formatMinor(symbol, item.UnitPriceMinor),
			Amount:    formatMinor(symbol, item.LineTotalMinor),
		})
	}

	paidAt := ""
	if detail.PaidAt != nil {
		paidAt = detail.PaidAt.Local().Format(time.RFC822)
	}
	paymentMode := ""
	if detail.PaymentMode != nil {
		paymentMode = string(*detail.PaymentMode)
	}

	serviceCharge := ""
	if detail.ServiceChargeMinor > 0 {
		serviceCharge = formatMinor(symbol, detail.ServiceChargeMinor)
	}
	discount := ""
	if detail.DiscountMinor > 0 {
		discount = formatMinor(symbol, detail.DiscountMinor)
	}

	return pdf.ReceiptData{
		HotelName:     detail.HotelName,
		BillNumber:    detail.BillNumber,
		Ticket:        detail.TicketNumber,
		TableNumber:   detail.TableNumber,
		WaiterName:    detail.WaiterName,
		PaidAt:        paidAt,
		PaymentMode:   paymentMode,
		Items:         items,
		Subtotal:      formatMinor(symbol, detail.SubtotalMinor),
		Tax:           formatMinor(symbol, detail.TaxMinor),
		ServiceCharge: serviceCharge,
		Discount:      discount,
		Total:         formatMinor(symbol, detail.TotalMinor),
		FooterText:    s.pos.Current().Receipt.FooterText,
	}
}

func formatMinor(symbol string, amountMinor int64) string {
	sign := ""
	if amountMinor < 0 {
		sign = "-"
		amountMinor = -amountMinor
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, amountMinor/100, amountMinor%100)
}
