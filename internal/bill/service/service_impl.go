package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"github.com/smallbiznis/tavolo/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"github.com/smallbiznis/tavolo/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     billdomain.Repository
	Orders   orderdomain.Repository
	Tables   tabledomain.Repository
	Hotels   hoteldomain.Repository
	Invoices invoicedomain.Recorder
	Notifier notificationdomain.Notifier
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     billdomain.Repository
	orders   orderdomain.Repository
	tables   tabledomain.Repository
	hotels   hoteldomain.Repository
	invoices invoicedomain.Recorder
	notifier notificationdomain.Notifier
	metrics  *metrics.Metrics
}

func NewService(p serviceParams) billdomain.Service {
	return &Service{
		log:      p.Log.Named("bill.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		orders:   p.Orders,
		tables:   p.Tables,
		hotels:   p.Hotels,
		invoices: p.Invoices,
		notifier: p.Notifier,
		metrics:  p.Metrics,
	}
}

// IssueForOrder creates the draft bill for a completed order. The
// unique (hotel_id, order_id) index makes a second issue for the same
// order a no-op that returns the existing bill.
func (s *Service) IssueForOrder(ctx context.Context, req billdomain.IssueRequest) (*billdomain.Bill, error) {
	if req.HotelID == 0 || req.OrderID == 0 {
		return nil, billdomain.ErrOrderNotBilled
	}

	now := time.Now().UTC()
	bill := &billdomain.Bill{
		ID:         s.genID.Generate(),
		HotelID:    req.HotelID,
		OrderID:    req.OrderID,
		BillNumber: "BILL-" + ulid.Make().String(),
		Status:     billdomain.StatusDraft,

		SubtotalMinor:      req.SubtotalMinor,
		TaxMinor:           req.TaxMinor,
		ServiceChargeMinor: req.ServiceChargeMinor,
		DiscountMinor:      req.DiscountMinor,
		TotalMinor:         req.TotalMinor,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		if db.IsDuplicateKeyErr(err) {
			existing, findErr := s.repo.FindByOrderID(ctx, req.HotelID, req.OrderID)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.metrics.RecordBillIssued(ctx, req.HotelID.String())
	s.log.Info("bill issued",
		zap.String("bill_id", bill.ID.String()),
		zap.String("order_id", req.OrderID.String()),
		zap.Int64("total_minor", bill.TotalMinor),
	)
	return bill, nil
}

func (s *Service) List(ctx context.Context, req billdomain.ListRequest) ([]billdomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, billdomain.ErrInvalidHotel
	}

	var status *billdomain.Status
	if value := strings.ToUpper(strings.TrimSpace(req.Status)); value != "" {
		parsed := billdomain.Status(value)
		if parsed != billdomain.StatusDraft && parsed != billdomain.StatusPaid {
			return nil, billdomain.ErrInvalidStatus
		}
		status = &parsed
	}

	bills, err := s.repo.List(ctx, hotelID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]billdomain.Response, 0, len(bills))
	for _, bill := range bills {
		resp = append(resp, toResponse(&bill))
	}
	return resp, nil
}

// GetByID decorates the bill with order, table and hotel context so a
// client can render the receipt in one round trip. Decoration is best
// effort, a missing related row leaves the field blank.
func (s *Service) GetByID(ctx context.Context, id string) (*billdomain.DetailResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, billdomain.ErrInvalidHotel
	}

	billID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, billdomain.ErrInvalidID
	}

	bill, err := s.repo.FindByID(ctx, hotelID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, billdomain.ErrNotFound
	}

	detail := s.decorate(ctx, bill)
	return detail, nil
}

// Pay settles a draft bill. The guarded update is the primary write,
// everything after it is best effort and logged on failure. Paying a
// bill twice returns ErrAlreadyPaid.
func (s *Service) Pay(ctx context.Context, req billdomain.PayRequest) (*billdomain.DetailResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, billdomain.ErrInvalidHotel
	}

	billID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, billdomain.ErrInvalidID
	}

	bill, err := s.repo.FindByID(ctx, hotelID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, billdomain.ErrNotFound
	}

	mode := billdomain.ParsePaymentMode(req.PaymentMode)
	now := time.Now().UTC()

	// Counter staff may override the amount, negative overrides are
	// rejected up front.
	amount := req.AmountMinor
	if amount != nil && *amount < 0 {
		return nil, billdomain.ErrInvalidAmount
	}

	changed, err := s.repo.MarkPaid(ctx, hotelID, billID, mode, amount, now)
	if err != nil {
		return nil, err
	}
	if changed == 0 {
		return nil, billdomain.ErrAlreadyPaid
	}

	bill.Status = billdomain.StatusPaid
	bill.PaymentMode = &mode
	bill.PaidAt = &now
	bill.UpdatedAt = now
	if amount != nil {
		bill.TotalMinor = *amount
	}

	s.settleOrder(ctx, bill, mode, now)

	s.metrics.RecordBillPaid(ctx, string(mode))
	s.log.Info("bill paid",
		zap.String("bill_id", bill.ID.String()),
		zap.String("payment_mode", string(mode)),
		zap.Int64("total_minor", bill.TotalMinor),
	)

	detail := s.decorate(ctx, bill)
	return detail, nil
}

// settleOrder runs the post-payment fan-out: invoice record, order
// completion, table release, manager notification. Each step is
// independent, one failure never blocks the rest.
func (s *Service) settleOrder(ctx context.Context, bill *billdomain.Bill, mode billdomain.PaymentMode, at time.Time) {
	if _, err := s.invoices.Record(ctx, invoicedomain.RecordRequest{
		HotelID:     bill.HotelID,
		BillID:      bill.ID,
		OrderID:     bill.OrderID,
		AmountMinor: bill.TotalMinor,
		PaymentMode: string(mode),
		IssuedAt:    at,
	}); err != nil {
		s.log.Error("invoice record failed",
			zap.String("bill_id", bill.ID.String()),
			zap.Error(err),
		)
	}

	working := []orderdomain.Status{
		orderdomain.StatusPending,
		orderdomain.StatusPreparing,
		orderdomain.StatusReady,
	}
	if _, err := s.orders.UpdateStatusFrom(ctx, bill.HotelID, bill.OrderID, working, orderdomain.StatusCompleted, at); err != nil {
		s.log.Warn("order completion on payment failed",
			zap.String("bill_id", bill.ID.String()),
			zap.String("order_id", bill.OrderID.String()),
			zap.Error(err),
		)
	}
	if err := s.orders.MarkBilled(ctx, bill.HotelID, bill.OrderID, at); err != nil {
		s.log.Warn("order billed stamp failed",
			zap.String("bill_id", bill.ID.String()),
			zap.String("order_id", bill.OrderID.String()),
			zap.Error(err),
		)
	}

	order, err := s.orders.FindByID(ctx, bill.HotelID, bill.OrderID)
	if err != nil || order == nil {
		s.log.Warn("order lookup on payment failed",
			zap.String("bill_id", bill.ID.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.tables.UpdateStatus(ctx, bill.HotelID, order.TableID, tabledomain.StatusAvailable); err != nil {
		s.log.Warn("table release on payment failed",
			zap.String("table_id", order.TableID.String()),
			zap.Error(err),
		)
	}

	s.notifier.Notify(ctx, notificationdomain.Event{
		HotelID:       bill.HotelID,
		RecipientRole: notificationdomain.RoleManager,
		Type:          notificationdomain.TypeBillPaid,
		Title:         "Bill " + bill.BillNumber + " paid",
		Body:          "Order " + order.TicketNumber + " settled via " + string(mode),
		Metadata: map[string]interface{}{
			"bill_id":  bill.ID.String(),
			"order_id": bill.OrderID.String(),
		},
	})
}

func (s *Service) decorate(ctx context.Context, bill *billdomain.Bill) *billdomain.DetailResponse {
	detail := &billdomain.DetailResponse{Response: toResponse(bill)}

	order, err := s.orders.FindByID(ctx, bill.HotelID, bill.OrderID)
	if err != nil {
		s.log.Warn("bill order lookup failed",
			zap.String("bill_id", bill.ID.String()),
			zap.Error(err),
		)
	}
	if order != nil {
		detail.TicketNumber = order.TicketNumber
		detail.WaiterName = order.WaiterName
		detail.Items = make([]billdomain.BillLineDetail, 0, len(order.Items))
		for _, item := range order.Items {
			detail.Items = append(detail.Items, billdomain.BillLineDetail{
				Name:           item.Name,
				UnitPriceMinor: item.UnitPriceMinor,
				Quantity:       item.Quantity,
				LineTotalMinor: item.LineTotalMinor,
			})
		}

		if table, err := s.tables.FindByID(ctx, bill.HotelID, order.TableID); err == nil && table != nil {
			detail.TableNumber = table.Number
		}
	}

	if hotel, err := s.hotels.FindByID(ctx, bill.HotelID); err == nil && hotel != nil {
		detail.HotelName = hotel.Name
		detail.CurrencyCode = hotel.CurrencyCode
	}

	return detail
}

func toResponse(bill *billdomain.Bill) billdomain.Response {
	return billdomain.Response{
		ID:                 bill.ID.String(),
		OrderID:            bill.OrderID.String(),
		BillNumber:         bill.BillNumber,
		Status:             bill.Status,
		SubtotalMinor:      bill.SubtotalMinor,
		TaxMinor:           bill.TaxMinor,
		ServiceChargeMinor: bill.ServiceChargeMinor,
		DiscountMinor:      bill.DiscountMinor,
		TotalMinor:         bill.TotalMinor,
		PaymentMode:        bill.PaymentMode,
		PaidAt:             bill.PaidAt,
		CreatedAt:          bill.CreatedAt,
		UpdatedAt:          bill.UpdatedAt,
	}
}
