package invoice

import (
	invoicedomain "github.com/smallbiznis/tavolo/internal/invoice/domain"
	"github.com/smallbiznis/tavolo/internal/invoice/repository"
	"github.com/smallbiznis/tavolo/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(func(svc invoicedomain.Service) invoicedomain.Recorder { return svc }),
)
