package menu

import (
	"github.com/smallbiznis/tavolo/internal/menu/repository"
	"github.com/smallbiznis/tavolo/internal/menu/service"
	"go.uber.org/fx"
)

var Module = fx.Module("menu.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
