package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	billrepository "github.com/smallbiznis/tavolo/internal/bill/repository"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	hotelrepository "github.com/smallbiznis/tavolo/internal/hotel/repository"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	orderrepository "github.com/smallbiznis/tavolo/internal/order/repository"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	tablerepository "github.com/smallbiznis/tavolo/internal/table/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recorderStub struct {
	mu       sync.Mutex
	requests []invoicedomain.RecordRequest
	err      error
}

func (s *recorderStub) Record(ctx context.Context, req invoicedomain.RecordRequest) (*invoicedomain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	return &invoicedomain.Invoice{BillID: req.BillID, OrderID: req.OrderID, AmountMinor: req.AmountMinor}, nil
}

func (s *recorderStub) Requests() []invoicedomain.RecordRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]invoicedomain.RecordRequest(nil), s.requests...)
}

type notifierStub struct {
	mu     sync.Mutex
	events []notificationdomain.Event
}

func (s *notifierStub) Notify(ctx context.Context, event notificationdomain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *notifierStub) Events() []notificationdomain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notificationdomain.Event(nil), s.events...)
}

type billFixture struct {
	svc      billdomain.Service
	db       *gorm.DB
	node     *snowflake.Node
	recorder *recorderStub
	notifier *notifierStub

	hotelID snowflake.ID
	tableID snowflake.ID
	orderID snowflake.ID

	orders orderdomain.Repository
	tables tabledomain.Repository
}

func setupBillService(t *testing.T) *billFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	require.NoError(t, db.Exec("PRAGMA busy_timeout = 5000").Error)

	require.NoError(t, db.AutoMigrate(
		&hoteldomain.Hotel{},
		&tabledomain.DiningTable{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&billdomain.Bill{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &billFixture{
		db:       db,
		node:     node,
		recorder: &recorderStub{},
		notifier: &notifierStub{},
		hotelID:  node.Generate(),
		tableID:  node.Generate(),
		orderID:  node.Generate(),
	}

	require.NoError(t, db.Create(&hoteldomain.Hotel{
		ID:                 f.hotelID,
		Name:               "Lakeview Palace",
		Slug:               "lakeview-palace",
		TaxRate:            5,
		CurrencyCode:       "INR",
		SubscriptionStatus: hoteldomain.SubscriptionActive,
	}).Error)

	require.NoError(t, db.Create(&tabledomain.DiningTable{
		ID:      f.tableID,
		HotelID: f.hotelID,
		Number:  "T7",
		Status:  tabledomain.StatusOccupied,
	}).Error)

	f.orders = orderrepository.NewRepository(db)
	f.tables = tablerepository.NewRepository(db)

	waiterID := node.Generate()
	require.NoError(t, f.orders.Create(context.Background(), &orderdomain.Order{
		ID:           f.orderID,
		HotelID:      f.hotelID,
		TableID:      f.tableID,
		WaiterID:     waiterID,
		WaiterName:   "Asha",
		TicketNumber: "KOT-20260901-ABCD1234",
		Status:       orderdomain.StatusReady,

		SubtotalMinor: 25000,
		TaxRate:       5,
		TaxMinor:      1250,
		TotalMinor:    26250,

		Items: []orderdomain.OrderItem{
			{
				ID:             node.Generate(),
				OrderID:        f.orderID,
				HotelID:        f.hotelID,
				MenuItemID:     node.Generate(),
				Name:           "Paneer Tikka",
				UnitPriceMinor: 10000,
				Quantity:       2,
				LineTotalMinor: 20000,
			},
			{
				ID:             node.Generate(),
				OrderID:        f.orderID,
				HotelID:        f.hotelID,
				MenuItemID:     node.Generate(),
				Name:           "Sweet Lassi",
				UnitPriceMinor: 5000,
				Quantity:       1,
				LineTotalMinor: 5000,
			},
		},
	}))

	f.svc = NewService(serviceParams{
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     billrepository.NewRepository(db),
		Orders:   f.orders,
		Tables:   f.tables,
		Hotels:   hotelrepository.NewRepository(db),
		Invoices: f.recorder,
		Notifier: f.notifier,
	})

	return f
}

func (f *billFixture) ctx() context.Context {
	return hotelctx.WithHotelID(context.Background(), f.hotelID)
}

func (f *billFixture) issue(t *testing.T) *billdomain.Bill {
	t.Helper()
	bill, err := f.svc.IssueForOrder(context.Background(), billdomain.IssueRequest{
		HotelID:       f.hotelID,
		OrderID:       f.orderID,
		SubtotalMinor: 25000,
		TaxMinor:      1250,
		TotalMinor:    26250,
	})
	require.NoError(t, err)
	return bill
}

func TestIssueForOrderIdempotent(t *testing.T) {
	f := setupBillService(t)

	first := f.issue(t)
	assert.Equal(t, billdomain.StatusDraft, first.Status)
	assert.True(t, strings.HasPrefix(first.BillNumber, "BILL-"), "bill number %q", first.BillNumber)

	second := f.issue(t)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&billdomain.Bill{}).
		Where("hotel_id = ? AND order_id = ?", f.hotelID, f.orderID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPayBillSettlesOrder(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	detail, err := f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "upi"})
	require.NoError(t, err)

	assert.Equal(t, billdomain.StatusPaid, detail.Status)
	require.NotNil(t, detail.PaymentMode)
	assert.Equal(t, billdomain.PaymentUPI, *detail.PaymentMode)
	require.NotNil(t, detail.PaidAt)

	// Exactly one invoice for the payment.
	requests := f.recorder.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, bill.ID, requests[0].BillID)
	assert.Equal(t, int64(26250), requests[0].AmountMinor)
	assert.Equal(t, "UPI", requests[0].PaymentMode)

	order, err := f.orders.FindByID(ctx, f.hotelID, f.orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, orderdomain.StatusCompleted, order.Status)
	assert.NotNil(t, order.BilledAt)

	table, err := f.tables.FindByID(ctx, f.hotelID, f.tableID)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, tabledomain.StatusAvailable, table.Status)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notificationdomain.RoleManager, events[0].RecipientRole)
	assert.Equal(t, notificationdomain.TypeBillPaid, events[0].Type)

	// The receipt payload carries the order context.
	assert.Equal(t, "KOT-20260901-ABCD1234", detail.TicketNumber)
	assert.Equal(t, "T7", detail.TableNumber)
	assert.Equal(t, "Asha", detail.WaiterName)
	assert.Equal(t, "Lakeview Palace", detail.HotelName)
	assert.Equal(t, "INR", detail.CurrencyCode)
	assert.Len(t, detail.Items, 2)
}

func TestPayBillTwiceReturnsAlreadyPaid(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	_, err := f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "CASH"})
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "CARD"})
	assert.ErrorIs(t, err, billdomain.ErrAlreadyPaid)

	assert.Len(t, f.recorder.Requests(), 1)
}

func TestPayWithAmountOverride(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	rounded := int64(26000)
	detail, err := f.svc.Pay(ctx, billdomain.PayRequest{
		ID:          bill.ID.String(),
		PaymentMode: "CASH",
		AmountMinor: &rounded,
	})
	require.NoError(t, err)
	assert.Equal(t, rounded, detail.TotalMinor)

	// The override is what lands on the invoice and the stored row.
	requests := f.recorder.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, rounded, requests[0].AmountMinor)

	stored, err := f.svc.GetByID(ctx, bill.ID.String())
	require.NoError(t, err)
	assert.Equal(t, rounded, stored.TotalMinor)
}

func TestPayRejectsNegativeAmount(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	negative := int64(-100)
	_, err := f.svc.Pay(ctx, billdomain.PayRequest{
		ID:          bill.ID.String(),
		PaymentMode: "CASH",
		AmountMinor: &negative,
	})
	assert.ErrorIs(t, err, billdomain.ErrInvalidAmount)

	stored, err := f.svc.GetByID(ctx, bill.ID.String())
	require.NoError(t, err)
	assert.Equal(t, billdomain.StatusDraft, stored.Status)
}

func TestPaySucceedsWhenInvoiceRecordFails(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	f.recorder.err = errors.New("invoice store down")

	detail, err := f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "CARD"})
	require.NoError(t, err)
	assert.Equal(t, billdomain.StatusPaid, detail.Status)

	// The rest of the settlement still ran.
	order, err := f.orders.FindByID(ctx, f.hotelID, f.orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, orderdomain.StatusCompleted, order.Status)

	table, err := f.tables.FindByID(ctx, f.hotelID, f.tableID)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, tabledomain.StatusAvailable, table.Status)
}

func TestPayUnrecognizedModeFallsBackToCash(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	detail, err := f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "bitcoin"})
	require.NoError(t, err)
	require.NotNil(t, detail.PaymentMode)
	assert.Equal(t, billdomain.PaymentCash, *detail.PaymentMode)
}

func TestPayConcurrentSinglePayment(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Pay(ctx, billdomain.PayRequest{ID: bill.ID.String(), PaymentMode: "CARD"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	paid := 0
	for err := range errs {
		if err == nil {
			paid++
			continue
		}
		assert.ErrorIs(t, err, billdomain.ErrAlreadyPaid)
	}
	assert.Equal(t, 1, paid)
	assert.Len(t, f.recorder.Requests(), 1)
}

func TestListBillsFiltersByStatus(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()
	bill := f.issue(t)

	drafts, err := f.svc.List(ctx, billdomain.ListRequest{Status: "draft"})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, bill.ID.String(), drafts[0].ID)

	paid, err := f.svc.List(ctx, billdomain.ListRequest{Status: "PAID"})
	require.NoError(t, err)
	assert.Empty(t, paid)

	_, err = f.svc.List(ctx, billdomain.ListRequest{Status: "VOID"})
	assert.ErrorIs(t, err, billdomain.ErrInvalidStatus)
}

func TestGetBillUnknownID(t *testing.T) {
	f := setupBillService(t)
	ctx := f.ctx()

	_, err := f.svc.GetByID(ctx, f.node.Generate().String())
	assert.ErrorIs(t, err, billdomain.ErrNotFound)

	_, err = f.svc.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, billdomain.ErrInvalidID)
}
