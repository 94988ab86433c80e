package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/hotelctx"
	notificationdomain "github.com/smallbiznis/tavolo/internal/notification/domain"
	"github.com/smallbiznis/tavolo/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type serviceParams struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    notificationdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	repo    notificationdomain.Repository
	metrics *metrics.Metrics
}

func NewService(p serviceParams) notificationdomain.Service {
	return &Service{
		log:     p.Log.Named("notification.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Notify persists the event. Failures are logged and swallowed so the
// triggering operation never rolls back over a missed notification.
func (s *Service) Notify(ctx context.Context, event notificationdomain.Event) {
	if event.HotelID == 0 {
		return
	}

	notification := &notificationdomain.Notification{
		ID:            s.genID.Generate(),
		HotelID:       event.HotelID,
		RecipientRole: strings.ToUpper(strings.TrimSpace(event.RecipientRole)),
		RecipientID:   event.RecipientID,
		Type:          event.Type,
		Title:         strings.TrimSpace(event.Title),
		Body:          strings.TrimSpace(event.Body),
		Metadata:      datatypes.JSONMap(event.Metadata),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		s.log.Warn("notification write failed",
			zap.String("hotel_id", event.HotelID.String()),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		return
	}

	s.metrics.RecordNotificationSent(ctx, notification.RecipientRole)
}

func (s *Service) List(ctx context.Context, req notificationdomain.ListRequest) ([]notificationdomain.Response, error) {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, notificationdomain.ErrInvalidHotel
	}

	filter := notificationdomain.ListRequest{
		Role:       strings.ToUpper(strings.TrimSpace(req.Role)),
		OnlyUnread: req.OnlyUnread,
		Limit:      req.Limit,
	}

	notifications, err := s.repo.List(ctx, hotelID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]notificationdomain.Response, 0, len(notifications))
	for _, notification := range notifications {
		resp = append(resp, toResponse(&notification))
	}
	return resp, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	hotelID, ok := hotelctx.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return notificationdomain.ErrInvalidHotel
	}

	notificationID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return notificationdomain.ErrInvalidID
	}

	return s.repo.MarkRead(ctx, hotelID, notificationID)
}

func toResponse(notification *notificationdomain.Notification) notificationdomain.Response {
	var recipientID *string
	if notification.RecipientID != nil {
		value := notification.RecipientID.String()
		recipientID = &value
	}
	return notificationdomain.Response{
		ID:            notification.ID.String(),
		RecipientRole: notification.RecipientRole,
		RecipientID:   recipientID,
		Type:          notification.Type,
		Title:         notification.Title,
		Body:          notification.Body,
		Metadata:      notification.Metadata,
		IsRead:        notification.IsRead,
		CreatedAt:     notification.CreatedAt,
	}
}
