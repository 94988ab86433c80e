package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/bill"
	"github.com/smallbiznis/tavolo/internal/config"
	"github.com/smallbiznis/tavolo/internal/hotel"
	"github.com/smallbiznis/tavolo/internal/invoice"
	"github.com/smallbiznis/tavolo/internal/menu"
	"github.com/smallbiznis/tavolo/internal/migration"
	"github.com/smallbiznis/tavolo/internal/notification"
	"github.com/smallbiznis/tavolo/internal/observability"
	"github.com/smallbiznis/tavolo/internal/order"
	"github.com/smallbiznis/tavolo/internal/providers"
	"github.com/smallbiznis/tavolo/internal/ratelimit"
	"github.com/smallbiznis/tavolo/internal/server"
	"github.com/smallbiznis/tavolo/internal/staff"
	"github.com/smallbiznis/tavolo/internal/table"
	"github.com/smallbiznis/tavolo/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		fx.Provide(config.NewPOSConfigHolder),
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Domains
		hotel.Module,
		staff.Module,
		menu.Module,
		table.Module,
		notification.Module,
		order.Module,
		bill.Module,
		invoice.Module,

		// Supporting services
		ratelimit.Module,
		providers.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
