package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"github.com/smallbiznis/tavolo/internal/billing"
	"github.com/smallbiznis/tavolo/internal/config"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"github.com/smallbiznis/tavolo/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"github.com/smallbiznis/tavolo/internal/staffctx"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"github.com/smallbiznis/tavolo/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	POS      *config.POSConfigHolder
	Repo     orderdomain.Repository
	Menus    menudomain.Repository
	Tables   tabledomain.Repository
	Hotels   hoteldomain.Repository
	Staff    staffdomain.Repository
	Bills    billdomain.Issuer
	Notifier notificationdomain.Notifier
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	pos      *config.POSConfigHolder
	repo     orderdomain.Repository
	menus    menudomain.Repository
	tables   tabledomain.Repository
	hotels   hoteldomain.Repository
	staff    staffdomain.Repository
	bills    billdomain.Issuer
	notifier notificationdomain.Notifier
	metrics  *metrics.Metrics
}

func NewService(p serviceParams) orderdomain.Service {
	return &Service{
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		pos:      p.POS,
		repo:     p.Repo,
		menus:    p.Menus,
		tables:   p.Tables,
		hotels:   p.Hotels,
		staff:    p.Staff,
		bills:    p.Bills,
		notifier: p.Notifier,
		metrics:  p.Metrics,
	}
}

// Place creates a PENDING order. Item names, prices and the hotel's
// rates are snapshotted so later menu or config edits never change
// what was agreed at the table.
func (s *Service) Place(ctx context.Context, req orderdomain.PlaceRequest) (*orderdomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, orderdomain.ErrInvalidHotel
	}
	identity, ok := staffctx.IdentityFromContext(ctx)
	if !ok {
		return nil, orderdomain.ErrInvalidHotel
	}

	if len(req.Items) == 0 {
		return nil, orderdomain.ErrEmptyOrder
	}

	tableID, err := snowflake.ParseString(strings.TrimSpace(req.TableID))
	if err != nil {
		return nil, orderdomain.ErrInvalidTable
	}
	table, err := s.tables.FindByID(ctx, hotelID, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, orderdomain.ErrInvalidTable
	}

	hotel, err := s.hotels.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, orderdomain.ErrInvalidHotel
	}

	menuItems, err := s.resolveMenuItems(ctx, hotelID, req.Items)
	if err != nil {
		return nil, err
	}

	waiterID, waiterName, err := s.resolveWaiter(ctx, hotelID, req.WaiterID, identity)
	if err != nil {
		return nil, err
	}

	taxRate, serviceChargeRate := s.effectiveRates(hotel)

	now := time.Now().UTC()
	orderID := s.genID.Generate()

	lines := make([]billing.Line, 0, len(req.Items))
	items := make([]orderdomain.OrderItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		menuItem := menuItems[reqItem.MenuItemID]

		line := billing.NormalizeLine(billing.Line{
			UnitPriceMinor: menuItem.PriceMinor,
			Quantity:       reqItem.Quantity,
		})
		lines = append(lines, line)

		var itemNotes *string
		if trimmed := strings.TrimSpace(ptrToString(reqItem.Notes)); trimmed != "" {
			itemNotes = &trimmed
		}

		items = append(items, orderdomain.OrderItem{
			ID:             s.genID.Generate(),
			OrderID:        orderID,
			HotelID:        hotelID,
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			UnitPriceMinor: line.UnitPriceMinor,
			Quantity:       line.Quantity,
			LineTotalMinor: billing.LineTotal(line),
			Notes:          itemNotes,
			CreatedAt:      now,
		})
	}

	totals := billing.Compute(lines, taxRate, serviceChargeRate, req.DiscountMinor)

	note := strings.TrimSpace(ptrToString(req.Note))
	var notePtr *string
	if note != "" {
		notePtr = &note
	}

	order := &orderdomain.Order{
		ID:           orderID,
		HotelID:      hotelID,
		TableID:      tableID,
		WaiterID:     waiterID,
		WaiterName:   waiterName,
		TicketNumber: s.newTicketNumber(now),
		Status:       orderdomain.StatusPending,

		SubtotalMinor:      totals.SubtotalMinor,
		TaxRate:            taxRate,
		TaxMinor:           totals.TaxMinor,
		ServiceChargeRate:  serviceChargeRate,
		ServiceChargeMinor: totals.ServiceChargeMinor,
		DiscountMinor:      totals.DiscountMinor,
		TotalMinor:         totals.TotalMinor,

		Note:      notePtr,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Occupying the table is best effort. The order stands even if
	// the floor status write fails.
	if err := s.tables.UpdateStatus(ctx, hotelID, tableID, tabledomain.StatusOccupied); err != nil {
		s.log.Warn("table occupy failed",
			zap.String("order_id", orderID.String()),
			zap.String("table_id", tableID.String()),
			zap.Error(err),
		)
	}

	s.notifier.Notify(ctx, notificationdomain.Event{
		HotelID:       hotelID,
		RecipientRole: notificationdomain.RoleKitchen,
		Type:          notificationdomain.TypeOrderPlaced,
		Title:         "New order " + order.TicketNumber,
		Body:          fmt.Sprintf("Table %s, %d items", table.Number, len(items)),
		Metadata: map[string]interface{}{
			"order_id": orderID.String(),
			"table_id": tableID.String(),
		},
	})

	s.metrics.RecordOrderPlaced(ctx, hotelID.String())
	s.log.Info("order placed",
		zap.String("order_id", orderID.String()),
		zap.String("ticket_number", order.TicketNumber),
		zap.Int64("total_minor", order.TotalMinor),
	)

	resp := toResponse(order)
	return &resp, nil
}

// UpdateStatus moves the order through its lifecycle. Terminal states
// are sealed. Completing an order synthesizes its draft bill.
func (s *Service) UpdateStatus(ctx context.Context, req orderdomain.UpdateStatusRequest) (*orderdomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, orderdomain.ErrInvalidHotel
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, orderdomain.ErrInvalidID
	}

	target, err := orderdomain.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, hotelID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}
	if order.Status.Terminal() {
		return nil, orderdomain.ErrTerminalStatus
	}

	now := time.Now().UTC()
	working := []orderdomain.Status{
		orderdomain.StatusPending,
		orderdomain.StatusPreparing,
		orderdomain.StatusReady,
	}
	changed, err := s.repo.UpdateStatusFrom(ctx, hotelID, orderID, working, target, now)
	if err != nil {
		return nil, err
	}
	if changed == 0 {
		// Lost the race to a transition that sealed the order.
		return nil, orderdomain.ErrTerminalStatus
	}

	order.Status = target
	order.UpdatedAt = now
	s.metrics.RecordOrderTransition(ctx, string(target))

	switch target {
	case orderdomain.StatusReady:
		s.notifyReady(ctx, order)
	case orderdomain.StatusCompleted:
		// The table stays occupied until the draft bill is paid, the
		// payment flow is what releases it.
		s.issueBill(ctx, order)
	case orderdomain.StatusCancelled:
		s.freeTable(ctx, order)
	}

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListRequest, page pagination.Pagination) (*orderdomain.ListResponse, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, orderdomain.ErrInvalidHotel
	}

	filter := orderdomain.ListRequest{
		Status:  strings.ToUpper(strings.TrimSpace(req.Status)),
		TableID: strings.TrimSpace(req.TableID),
	}

	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	orders, err := s.repo.List(ctx, hotelID, filter, pagination.Pagination{
		PageToken: page.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(orders, int32(pageSize), func(order *orderdomain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        order.ID.String(),
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(orders) > pageSize {
		orders = orders[:pageSize]
	}

	resp := &orderdomain.ListResponse{Orders: make([]orderdomain.Response, 0, len(orders))}
	for _, order := range orders {
		if order == nil {
			continue
		}
		resp.Orders = append(resp.Orders, toResponse(order))
	}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*orderdomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, orderdomain.ErrInvalidHotel
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, orderdomain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, hotelID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrNotFound
	}

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) resolveMenuItems(ctx context.Context, hotelID snowflake.ID, reqItems []orderdomain.PlaceRequestItem) (map[string]*menudomain.Item, error) {
	ids := make([]snowflake.ID, 0, len(reqItems))
	for _, reqItem := range reqItems {
		id, err := snowflake.ParseString(strings.TrimSpace(reqItem.MenuItemID))
		if err != nil {
			return nil, orderdomain.ErrUnknownMenuItem
		}
		ids = append(ids, id)
	}

	items, err := s.menus.FindItemsByIDs(ctx, hotelID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*menudomain.Item, len(items))
	for i := range items {
		byID[items[i].ID.String()] = &items[i]
	}

	for _, reqItem := range reqItems {
		item, ok := byID[strings.TrimSpace(reqItem.MenuItemID)]
		if !ok {
			return nil, orderdomain.ErrUnknownMenuItem
		}
		if !item.IsAvailable {
			return nil, orderdomain.ErrItemUnavailable
		}
	}
	return byID, nil
}

// resolveWaiter honors an explicit waiter reference and falls back to
// the authenticated caller when none is given. An explicit waiter must
// be an active staff member of the same hotel.
func (s *Service) resolveWaiter(ctx context.Context, hotelID snowflake.ID, waiterRef string, identity staffctx.Identity) (snowflake.ID, string, error) {
	ref := strings.TrimSpace(waiterRef)
	if ref == "" {
		return identity.StaffID, identity.Name, nil
	}

	waiterID, err := snowflake.ParseString(ref)
	if err != nil {
		return 0, "", orderdomain.ErrInvalidWaiter
	}
	if waiterID == identity.StaffID {
		return identity.StaffID, identity.Name, nil
	}

	waiter, err := s.staff.FindUserByID(ctx, waiterID)
	if err != nil {
		return 0, "", err
	}
	if waiter == nil || waiter.HotelID != hotelID || !waiter.IsActive {
		return 0, "", orderdomain.ErrInvalidWaiter
	}
	return waiter.ID, waiter.Name, nil
}

// effectiveRates falls back to floor-level defaults for hotels that
// have not configured their own rates.
func (s *Service) effectiveRates(hotel *hoteldomain.Hotel) (float64, float64) {
	taxRate := hotel.TaxRate
	serviceChargeRate := hotel.ServiceChargeRate
	defaults := s.pos.Current().Defaults
	if taxRate <= 0 {
		taxRate = defaults.GSTPercent
	}
	if serviceChargeRate < 0 {
		serviceChargeRate = defaults.ServiceChargePercent
	}
	return taxRate, serviceChargeRate
}

func (s *Service) newTicketNumber(at time.Time) string {
	prefix := strings.TrimSpace(s.pos.Current().Kitchen.TicketPrefix)
	if prefix == "" {
		prefix = "KOT"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), suffix)
}

func (s *Service) notifyReady(ctx context.Context, order *orderdomain.Order) {
	// Orders without a known waiter broadcast to the whole waiter role.
	var recipient *snowflake.ID
	if order.WaiterID != 0 {
		waiterID := order.WaiterID
		recipient = &waiterID
	}
	s.notifier.Notify(ctx, notificationdomain.Event{
		HotelID:       order.HotelID,
		RecipientRole: notificationdomain.RoleWaiter,
		RecipientID:   recipient,
		Type:          notificationdomain.TypeOrderReady,
		Title:         "Order " + order.TicketNumber + " ready",
		Body:          "Ready for pickup",
		Metadata: map[string]interface{}{
			"order_id": order.ID.String(),
		},
	})
}

// issueBill is best effort from the caller's point of view. The status
// transition already committed, a failed synthesis is logged and the
// draft can be recovered by re-issuing.
func (s *Service) issueBill(ctx context.Context, order *orderdomain.Order) {
	_, err := s.bills.IssueForOrder(ctx, billdomain.IssueRequest{
		HotelID:            order.HotelID,
		OrderID:            order.ID,
		SubtotalMinor:      order.SubtotalMinor,
		TaxMinor:           order.TaxMinor,
		ServiceChargeMinor: order.ServiceChargeMinor,
		DiscountMinor:      order.DiscountMinor,
		TotalMinor:         order.TotalMinor,
	})
	if err != nil {
		s.log.Error("bill synthesis failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) freeTable(ctx context.Context, order *orderdomain.Order) {
	if err := s.tables.UpdateStatus(ctx, order.HotelID, order.TableID, tabledomain.StatusAvailable); err != nil {
		s.log.Warn("table release failed",
			zap.String("order_id", order.ID.String()),
			zap.String("table_id", order.TableID.String()),
			zap.Error(err),
		)
	}
}

func toResponse(order *orderdomain.Order) orderdomain.Response {
	items := make([]orderdomain.ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderdomain.ItemResponse{
			ID:             item.ID.String(),
			MenuItemID:     item.MenuItemID.String(),
			Name:           item.Name,
			UnitPriceMinor: item.UnitPriceMinor,
			Quantity:       item.Quantity,
			LineTotalMinor: item.LineTotalMinor,
			Notes:          item.Notes,
		})
	}

	return orderdomain.Response{
		ID:           order.ID.String(),
		TableID:      order.TableID.String(),
		WaiterID:     order.WaiterID.String(),
		WaiterName:   order.WaiterName,
		TicketNumber: order.TicketNumber,
		Status:       order.Status,
		Note:         order.Note,

		SubtotalMinor:      order.SubtotalMinor,
		TaxRate:            order.TaxRate,
		TaxMinor:           order.TaxMinor,
		ServiceChargeRate:  order.ServiceChargeRate,
		ServiceChargeMinor: order.ServiceChargeMinor,
		DiscountMinor:      order.DiscountMinor,
		TotalMinor:         order.TotalMinor,

		Items:     items,
		BilledAt:  order.BilledAt,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
