package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"github.com/smallbiznis/tavolo/internal/config"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"github.com/smallbiznis/tavolo/internal/observability"
	obslogger "github.com/smallbiznis/tavolo/internal/observability/logger"
	obstracing "github.com/smallbiznis/tavolo/internal/observability/tracing"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	"github.com/smallbiznis/tavolo/internal/providers/pdf"
	"github.com/smallbiznis/tavolo/internal/ratelimit"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	pos    *config.POSConfigHolder

	staffSvc        staffdomain.Service
	hotelSvc        hoteldomain.Service
	menuSvc         menudomain.Service
	tableSvc        tabledomain.Service
	orderSvc        orderdomain.Service
	billSvc         billdomain.Service
	invoiceSvc      invoicedomain.Service
	notificationSvc notificationdomain.Service

	receipts     *pdf.ReceiptRenderer
	loginLimiter *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	POS *config.POSConfigHolder

	StaffSvc        staffdomain.Service
	HotelSvc        hoteldomain.Service
	MenuSvc         menudomain.Service
	TableSvc        tabledomain.Service
	OrderSvc        orderdomain.Service
	BillSvc         billdomain.Service
	InvoiceSvc      invoicedomain.Service
	NotificationSvc notificationdomain.Service

	Receipts     *pdf.ReceiptRenderer
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		pos:             p.POS,
		staffSvc:        p.StaffSvc,
		hotelSvc:        p.HotelSvc,
		menuSvc:         p.MenuSvc,
		tableSvc:        p.TableSvc,
		orderSvc:        p.OrderSvc,
		billSvc:         p.BillSvc,
		invoiceSvc:      p.InvoiceSvc,
		notificationSvc: p.NotificationSvc,
		receipts:        p.Receipts,
		loginLimiter:    p.LoginLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.AuthRequired(), s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired(), s.SubscriptionRequired())

	api.POST("/orders", s.RequireRole(
		string(staffdomain.RoleWaiter),
		string(staffdomain.RoleManager),
		string(staffdomain.RoleAdmin),
		string(staffdomain.RoleSuperAdmin),
	), s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)

	api.GET("/bills", s.ListBills)
	api.GET("/bills/:id", s.GetBill)
	api.POST("/bills/:id/pay", s.RequireRole(
		string(staffdomain.RoleManager),
		string(staffdomain.RoleAdmin),
		string(staffdomain.RoleSuperAdmin),
	), s.PayBill)
	api.GET("/bills/:id/receipt", s.BillReceipt)

	api.GET("/invoices", s.ListInvoices)

	api.GET("/tables", s.ListTables)
	api.POST("/tables", s.adminOnly(), s.CreateTable)
	api.PUT("/tables/:id/status", s.SetTableStatus)
	api.DELETE("/tables/:id", s.adminOnly(), s.DeleteTable)

	api.GET("/menu/categories", s.ListMenuCategories)
	api.POST("/menu/categories", s.adminOnly(), s.CreateMenuCategory)
	api.GET("/menu/items", s.ListMenuItems)
	api.POST("/menu/items", s.adminOnly(), s.CreateMenuItem)
	api.PUT("/menu/items/:id", s.adminOnly(), s.UpdateMenuItem)
	api.DELETE("/menu/items/:id", s.adminOnly(), s.DeleteMenuItem)

	api.GET("/notifications", s.ListNotifications)
	api.PUT("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/hotel", s.GetHotel)
	api.PUT("/hotel/tax-config", s.adminOnly(), s.UpdateHotelTaxConfig)
}

func (s *Server) adminOnly() gin.HandlerFunc {
	return s.RequireRole(
		string(staffdomain.RoleAdmin),
		string(staffdomain.RoleSuperAdmin),
	)
}
