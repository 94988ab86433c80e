package migration

import (
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"github.com/smallbiznis/tavolo/internal/config"
	hoteldomain "github.com/smallbiznis/tavolo/internal/hotel/domain"
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	menudomain "github.com/smallbiznis/tavolo/internal/menu/domain"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	orderdomain "github.com/smallbiznis/tavolo/internal/order/domain"
	"github.com/smallbiznis/tavolo/internal/seed"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	tabledomain "github.com/smallbiznis/tavolo/internal/table/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Dev drivers (sqlite, mysql) rely on the ORM schema.
			if err := conn.AutoMigrate(
				&hoteldomain.Hotel{},
				&staffdomain.StaffUser{},
				&staffdomain.StaffSession{},
				&menudomain.Category{},
				&menudomain.Item{},
				&tabledomain.DiningTable{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
				&billdomain.Bill{},
				&invoicedomain.Invoice{},
				&notificationdomain.Notification{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultHotelAndAdmin(conn)
	}),
)
