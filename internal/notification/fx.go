package notification

import (
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"github.com/smallbiznis/tavolo/internal/notification/repository"
	"github.com/smallbiznis/tavolo/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Provide(func(svc notificationdomain.Service) notificationdomain.Notifier { return svc }),
)
