package observability

import (
	"context"
	"credit-account/internal/account"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

const meterName = "credit-account/internal/account"

// SetupOpenTelemetry installs a global meter provider whose readings are
// exposed through reg alongside the native Prometheus collectors.
func SetupOpenTelemetry(serviceName string, reg prometheus.Registerer, logger *zap.Logger) (func(), error) {
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	metricExporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("otel prometheus exporter: %w", err)
	}

	metricProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(metricExporter),
	)

	otel.SetMeterProvider(metricProvider)

	logger.Info("OpenTelemetry initialized",
		zap.String("service", serviceName))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := metricProvider.Shutdown(ctx); err != nil {
			logger.Error("error shutting down OpenTelemetry", zap.Error(err))
		}
	}, nil
}

type AccountMeter struct {
	operations metric.Int64Counter
}

// NewAccountMeter builds its instruments from the global meter provider, so
// it records nothing until SetupOpenTelemetry has run.
func NewAccountMeter() (*AccountMeter, error) {
	meter := otel.Meter(meterName)
	operations, err := meter.Int64Counter(
		"account.transitions",
		metric.WithDescription("Account state transitions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("account.transitions counter: %w", err)
	}
	return &AccountMeter{operations: operations}, nil
}

func (m *AccountMeter) Record(ctx context.Context, op account.Op, applied bool) {
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", string(op)),
		attribute.String("result", Result(applied)),
	))
}
