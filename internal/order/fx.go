package order

import (
	"github.com/smallbiznis/tavolo/internal/order/repository"
	"github.com/smallbiznis/tavolo/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
