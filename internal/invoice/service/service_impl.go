package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	"github.com/smallbiznis/tavolo/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  invoicedomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  invoicedomain.Repository
}

func NewService(p serviceParams) invoicedomain.Service {
	return &Service{
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Record appends the payment record for a settled bill. A duplicate
// for the same bill returns the existing invoice instead of failing.
func (s *Service) Record(ctx context.Context, req invoicedomain.RecordRequest) (*invoicedomain.Invoice, error) {
	if req.HotelID == 0 {
		return nil, invoicedomain.ErrInvalidHotel
	}

	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}

	invoice := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		HotelID:       req.HotelID,
		BillID:        req.BillID,
		OrderID:       req.OrderID,
		InvoiceNumber: newInvoiceNumber(issuedAt, s.genID.Generate()),
		AmountMinor:   req.AmountMinor,
		PaymentMode:   req.PaymentMode,
		IssuedAt:      issuedAt,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return s.repo.FindByBillID(ctx, req.HotelID, req.BillID)
		}
		return nil, err
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, invoicedomain.ErrInvalidHotel
	}

	invoices, err := s.repo.List(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	resp := make([]invoicedomain.Response, 0, len(invoices))
	for _, invoice := range invoices {
		resp = append(resp, toResponse(&invoice))
	}
	return resp, nil
}

func toResponse(invoice *invoicedomain.Invoice) invoicedomain.Response {
	return invoicedomain.Response{
		ID:            invoice.ID.String(),
		BillID:        invoice.BillID.String(),
		OrderID:       invoice.OrderID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		AmountMinor:   invoice.AmountMinor,
		PaymentMode:   invoice.PaymentMode,
		IssuedAt:      invoice.IssuedAt,
	}
}

func newInvoiceNumber(at time.Time, id snowflake.ID) string {
	return fmt.Sprintf("INV-%s-%d", at.Format("20060102"), id)
}
