package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	ordersPlaced      metric.Int64Counter
	orderTransitions  metric.Int64Counter
	billsIssued       metric.Int64Counter
	billsPaid         metric.Int64Counter
	notificationsSent metric.Int64Counter
	rateLimitDenied   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down meter provider")
			return provider.Shutdown(ctx)
		},
	})

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "tavolo"
	}
	meter := provider.Meter(name)

	ordersPlaced, err := meter.Int64Counter("tavolo_orders_placed_total")
	if err != nil {
		return nil, err
	}
	orderTransitions, err := meter.Int64Counter("tavolo_order_transitions_total")
	if err != nil {
		return nil, err
	}
	billsIssued, err := meter.Int64Counter("tavolo_bills_issued_total")
	if err != nil {
		return nil, err
	}
	billsPaid, err := meter.Int64Counter("tavolo_bills_paid_total")
	if err != nil {
		return nil, err
	}
	notificationsSent, err := meter.Int64Counter("tavolo_notifications_sent_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("tavolo_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ordersPlaced:      ordersPlaced,
		orderTransitions:  orderTransitions,
		billsIssued:       billsIssued,
		billsPaid:         billsPaid,
		notificationsSent: notificationsSent,
		rateLimitDenied:   rateLimitDenied,
	}, nil
}

// RecordOrderPlaced increments placed-order counts.
func (m *Metrics) RecordOrderPlaced(ctx context.Context, hotelID string) {
	if m == nil {
		return
	}
	m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(
		attribute.String("hotel_id", strings.TrimSpace(hotelID)),
	))
}

// RecordOrderTransition increments status-transition counts per target status.
func (m *Metrics) RecordOrderTransition(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.orderTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", strings.TrimSpace(status)),
	))
}

// RecordBillIssued increments draft-bill synthesis counts.
func (m *Metrics) RecordBillIssued(ctx context.Context, hotelID string) {
	if m == nil {
		return
	}
	m.billsIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.String("hotel_id", strings.TrimSpace(hotelID)),
	))
}

// RecordBillPaid increments paid-bill counts per payment method.
func (m *Metrics) RecordBillPaid(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.billsPaid.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment_method", strings.TrimSpace(method)),
	))
}

// RecordNotificationSent increments notification fan-out counts.
func (m *Metrics) RecordNotificationSent(ctx context.Context, recipientRole string) {
	if m == nil {
		return
	}
	m.notificationsSent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("recipient_role", strings.TrimSpace(recipientRole)),
	))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}
