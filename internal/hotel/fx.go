package hotel

import (
	"github.com/smallbiznis/tavolo/internal/hotel/repository"
	"github.com/smallbiznis/tavolo/internal/hotel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("hotel.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
