package table

import (
	"github.com/smallbiznis/tavolo/internal/table/repository"
	"github.com/smallbiznis/tavolo/internal/table/service"
	"go.uber.org/fx"
)

var Module = fx.Module("table.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
