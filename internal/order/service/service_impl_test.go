package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	hotelrepository "github.com/smallbiznis/tavolo/internal/hotel/repository"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	menurepository "github.com/smallbiznis/tavolo/internal/menu/repository"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	orderrepository "github.com/smallbiznis/tavolo/internal/order/repository"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	staffrepository "github.com/smallbiznis/tavolo/internal/staff/repository"
	"github.com/smallbiznis/tavolo/internal/staffctx"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	tablerepository "github.com/smallbiznis/tavolo/internal/table/repository"
	"github.com/smallbiznis/tavolo/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type issuerStub struct {
	mu       sync.Mutex
	requests []billdomain.IssueRequest
	err      error
}

func (s *issuerStub) IssueForOrder(ctx context.Context, req billdomain.IssueRequest) (*billdomain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	return &billdomain.Bill{HotelID: req.HotelID, OrderID: req.OrderID, Status: billdomain.StatusDraft}, nil
}

func (s *issuerStub) Requests() []billdomain.IssueRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]billdomain.IssueRequest(nil), s.requests...)
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

type orderFixture struct {
	svc      orderdomain.Service
	db       *gorm.DB
	node     *snowflake.Node
	issuer   *issuerStub
	notifier *notifierStub

	hotelID  snowflake.ID
	tableID  snowflake.ID
	paneerID snowflake.ID
	lassiID  snowflake.ID
	offMenu  snowflake.ID
	waiterID snowflake.ID

	orders orderdomain.Repository
	tables tabledomain.Repository
}

func setupOrderService(t *testing.T) *orderFixture {
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
		&staffdomain.StaffUser{},
		&menudomain.Category{},
		&menudomain.Item{},
		&tabledomain.DiningTable{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &orderFixture{
		db:       db,
		node:     node,
		issuer:   &issuerStub{},
		notifier: &notifierStub{},
		hotelID:  node.Generate(),
		tableID:  node.Generate(),
		paneerID: node.Generate(),
		lassiID:  node.Generate(),
		offMenu:  node.Generate(),
		waiterID: node.Generate(),
	}

	require.NoError(t, db.Create(&hoteldomain.Hotel{
		ID:                 f.hotelID,
		Name:               "Lakeview Palace",
		Slug:               "lakeview-palace",
		TaxRate:            5,
		ServiceChargeRate:  0,
		CurrencyCode:       "INR",
		SubscriptionStatus: hoteldomain.SubscriptionActive,
	}).Error)

	require.NoError(t, db.Create(&tabledomain.DiningTable{
		ID:      f.tableID,
		HotelID: f.hotelID,
		Number:  "T1",
		Status:  tabledomain.StatusAvailable,
	}).Error)

	categoryID := node.Generate()
	require.NoError(t, db.Create(&menudomain.Category{
		ID:      categoryID,
		HotelID: f.hotelID,
		Name:    "Mains",
	}).Error)
	require.NoError(t, db.Create(&menudomain.Item{
		ID:          f.paneerID,
		HotelID:     f.hotelID,
		CategoryID:  categoryID,
		Name:        "Paneer Tikka",
		PriceMinor:  10000,
		IsAvailable: true,
	}).Error)
	require.NoError(t, db.Create(&menudomain.Item{
		ID:          f.lassiID,
		HotelID:     f.hotelID,
		CategoryID:  categoryID,
		Name:        "Sweet Lassi",
		PriceMinor:  5000,
		IsAvailable: true,
	}).Error)
	require.NoError(t, db.Create(&menudomain.Item{
		ID:          f.offMenu,
		HotelID:     f.hotelID,
		CategoryID:  categoryID,
		Name:        "Seasonal Special",
		PriceMinor:  20000,
		IsAvailable: false,
	}).Error)

	require.NoError(t, db.Create(&staffdomain.StaffUser{
		ID:           f.waiterID,
		HotelID:      f.hotelID,
		Name:         "Ravi",
		Email:        "ravi@lakeview.example",
		PasswordHash: "x",
		Role:         staffdomain.RoleWaiter,
		IsActive:     true,
	}).Error)

	f.orders = orderrepository.NewRepository(db)
	f.tables = tablerepository.NewRepository(db)
	f.svc = NewService(serviceParams{
		Log:      zap.NewNop(),
		GenID:    node,
		POS:      nil,
		Repo:     f.orders,
		Menus:    menurepository.NewRepository(db),
		Tables:   f.tables,
		Hotels:   hotelrepository.NewRepository(db),
		Staff:    staffrepository.NewRepository(db),
		Bills:    f.issuer,
		Notifier: f.notifier,
	})

	return f
}

func (f *orderFixture) ctx() context.Context {
	ctx := hotelctx.WithHotelID(context.Background(), f.hotelID)
	return staffctx.WithIdentity(ctx, staffctx.Identity{
		StaffID: f.node.Generate(),
		HotelID: f.hotelID,
		Name:    "Asha",
		Role:    "WAITER",
	})
}

func (f *orderFixture) place(t *testing.T, ctx context.Context) *orderdomain.Response {
	t.Helper()
	lessSpicy := "less spicy"
	resp, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID: f.tableID.String(),
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.paneerID.String(), Quantity: 2, Notes: &lessSpicy},
			{MenuItemID: f.lassiID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestPlaceOrderSnapshotsTotals(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	assert.Equal(t, orderdomain.StatusPending, resp.Status)
	assert.Equal(t, int64(25000), resp.SubtotalMinor)
	assert.Equal(t, float64(5), resp.TaxRate)
	assert.Equal(t, int64(1250), resp.TaxMinor)
	assert.Equal(t, int64(0), resp.ServiceChargeMinor)
	assert.Equal(t, int64(26250), resp.TotalMinor)
	assert.Len(t, resp.Items, 2)
	assert.True(t, strings.HasPrefix(resp.TicketNumber, "KOT-"), "ticket %q", resp.TicketNumber)

	// Line snapshots carry name and unit price from the menu.
	byName := map[string]orderdomain.ItemResponse{}
	for _, item := range resp.Items {
		byName[item.Name] = item
	}
	assert.Equal(t, int64(20000), byName["Paneer Tikka"].LineTotalMinor)
	assert.Equal(t, int64(5000), byName["Sweet Lassi"].LineTotalMinor)

	// Per-line kitchen instructions ride along with the snapshot.
	require.NotNil(t, byName["Paneer Tikka"].Notes)
	assert.Equal(t, "less spicy", *byName["Paneer Tikka"].Notes)
	assert.Nil(t, byName["Sweet Lassi"].Notes)

	table, err := f.tables.FindByID(ctx, f.hotelID, f.tableID)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, tabledomain.StatusOccupied, table.Status)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notificationdomain.RoleKitchen, events[0].RecipientRole)
	assert.Equal(t, notificationdomain.TypeOrderPlaced, events[0].Type)
}

func TestPlaceOrderAppliesDiscount(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID:       f.tableID.String(),
		DiscountMinor: 1250,
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.paneerID.String(), Quantity: 2},
			{MenuItemID: f.lassiID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), resp.SubtotalMinor)
	assert.Equal(t, int64(1250), resp.TaxMinor)
	assert.Equal(t, int64(1250), resp.DiscountMinor)
	assert.Equal(t, int64(25000), resp.TotalMinor)
}

func TestPlaceOrderRejectsBadItems(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	_, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID: f.tableID.String(),
		Items:   []orderdomain.PlaceRequestItem{},
	})
	assert.ErrorIs(t, err, orderdomain.ErrEmptyOrder)

	_, err = f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID: f.tableID.String(),
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.node.Generate().String(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, orderdomain.ErrUnknownMenuItem)

	_, err = f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID: f.tableID.String(),
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.offMenu.String(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, orderdomain.ErrItemUnavailable)
}

func TestPlaceOrderClampsQuantity(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID: f.tableID.String(),
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.lassiID.String(), Quantity: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, int64(5000), resp.SubtotalMinor)
}

func TestPlaceOrderWithExplicitWaiter(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID:  f.tableID.String(),
		WaiterID: f.waiterID.String(),
		Items: []orderdomain.PlaceRequestItem{
			{MenuItemID: f.lassiID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, f.waiterID.String(), resp.WaiterID)
	assert.Equal(t, "Ravi", resp.WaiterName)
}

func TestPlaceOrderDefaultsWaiterToCaller(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)
	assert.Equal(t, "Asha", resp.WaiterName)
}

func TestPlaceOrderRejectsUnknownWaiter(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	items := []orderdomain.PlaceRequestItem{
		{MenuItemID: f.lassiID.String(), Quantity: 1},
	}

	_, err := f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID:  f.tableID.String(),
		WaiterID: f.node.Generate().String(),
		Items:    items,
	})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidWaiter)

	_, err = f.svc.Place(ctx, orderdomain.PlaceRequest{
		TableID:  f.tableID.String(),
		WaiterID: "not-a-number",
		Items:    items,
	})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidWaiter)
}

func TestUpdateStatusSealsTerminalOrders(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	cancelled, err := f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusCancelled, cancelled.Status)

	table, err := f.tables.FindByID(ctx, f.hotelID, f.tableID)
	require.NoError(t, err)
	assert.Equal(t, tabledomain.StatusAvailable, table.Status)

	_, err = f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "PREPARING"})
	assert.ErrorIs(t, err, orderdomain.ErrTerminalStatus)

	assert.Empty(t, f.issuer.Requests(), "cancellation must not synthesize a bill")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	_, err := f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "SERVED"})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidStatus)
}

func TestCompleteOrderIssuesDraftBill(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	completed, err := f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusCompleted, completed.Status)

	requests := f.issuer.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, f.hotelID, requests[0].HotelID)
	assert.Equal(t, int64(25000), requests[0].SubtotalMinor)
	assert.Equal(t, int64(1250), requests[0].TaxMinor)
	assert.Equal(t, int64(26250), requests[0].TotalMinor)

	// The bill is still a draft, the table stays occupied until it is
	// paid.
	table, err := f.tables.FindByID(ctx, f.hotelID, f.tableID)
	require.NoError(t, err)
	assert.Equal(t, tabledomain.StatusOccupied, table.Status)

	// A second completion attempt finds the order sealed.
	_, err = f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "COMPLETED"})
	assert.ErrorIs(t, err, orderdomain.ErrTerminalStatus)
	assert.Len(t, f.issuer.Requests(), 1)
}

func TestReadyNotifiesWaiter(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	_, err := f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: resp.ID, Status: "READY"})
	require.NoError(t, err)

	events := f.notifier.Events()
	require.Len(t, events, 2)
	ready := events[1]
	assert.Equal(t, notificationdomain.RoleWaiter, ready.RecipientRole)
	assert.Equal(t, notificationdomain.TypeOrderReady, ready.Type)
	require.NotNil(t, ready.RecipientID)
	assert.Equal(t, resp.WaiterID, ready.RecipientID.String())
}

func TestReadyWithoutWaiterBroadcastsToRole(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	// An order with no recorded waiter, seeded directly.
	orderID := f.node.Generate()
	require.NoError(t, f.orders.Create(context.Background(), &orderdomain.Order{
		ID:           orderID,
		HotelID:      f.hotelID,
		TableID:      f.tableID,
		WaiterID:     0,
		TicketNumber: "KOT-20260901-NOWAITER",
		Status:       orderdomain.StatusPending,
	}))

	_, err := f.svc.UpdateStatus(ctx, orderdomain.UpdateStatusRequest{ID: orderID.String(), Status: "READY"})
	require.NoError(t, err)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notificationdomain.RoleWaiter, events[0].RecipientRole)
	assert.Equal(t, notificationdomain.TypeOrderReady, events[0].Type)
	assert.Nil(t, events[0].RecipientID, "no waiter on record, the whole role gets the ping")
}

func TestListOrdersPaginates(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	for i := 0; i < 3; i++ {
		f.place(t, ctx)
	}

	first, err := f.svc.List(ctx, orderdomain.ListRequest{}, pagination.Pagination{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, first.Orders, 2)
	assert.True(t, first.PageInfo.HasMore)
	require.NotEmpty(t, first.PageInfo.NextPageToken)

	second, err := f.svc.List(ctx, orderdomain.ListRequest{}, pagination.Pagination{
		PageSize:  2,
		PageToken: first.PageInfo.NextPageToken,
	})
	require.NoError(t, err)
	assert.Len(t, second.Orders, 1)
	assert.False(t, second.PageInfo.HasMore)

	seen := map[string]bool{}
	for _, page := range [][]orderdomain.Response{first.Orders, second.Orders} {
		for _, order := range page {
			assert.False(t, seen[order.ID], "order %s returned twice", order.ID)
			seen[order.ID] = true
		}
	}
}

func TestOrdersScopedToHotel(t *testing.T) {
	f := setupOrderService(t)
	ctx := f.ctx()

	resp := f.place(t, ctx)

	otherHotel := f.node.Generate()
	otherCtx := staffctx.WithIdentity(
		hotelctx.WithHotelID(context.Background(), otherHotel),
		staffctx.Identity{StaffID: f.node.Generate(), HotelID: otherHotel, Name: "Ravi", Role: "MANAGER"},
	)

	_, err := f.svc.GetByID(otherCtx, resp.ID)
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}
