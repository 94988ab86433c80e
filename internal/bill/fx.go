package bill

import (
	billdomain "github.com/smallbiznis/tavolo/internal/bill/domain"
	"github.com/smallbiznis/tavolo/internal/bill/repository"
	"github.com/smallbiznis/tavolo/internal/bill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(func(svc billdomain.Service) billdomain.Issuer { return svc }),
)
