package staff

import (
	"github.com/smallbiznis/tavolo/internal/staff/repository"
	"github.com/smallbiznis/tavolo/internal/staff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("staff.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
