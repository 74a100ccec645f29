// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "finance-assistant"

// Telemetry holds the OpenTelemetry instruments shared by the
// assistant pipeline. Measurements surface on the same /metrics
// endpoint as the native Prometheus collectors.
type Telemetry struct {
	provider *sdkmetric.MeterProvider

	QueriesAnswered metric.Int64Counter
	AnswerDuration  metric.Float64Histogram
}

// NewTelemetry wires an OTel meter provider backed by the Prometheus
// exporter and registers the pipeline instruments.
func NewTelemetry() (*Telemetry, error) {
	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meterName)

	queries, err := meter.Int64Counter(
		"assistant.queries.answered",
		metric.WithDescription("Queries answered by the assistant"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queries counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"assistant.answer.duration",
		metric.WithDescription("End-to-end answer latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Telemetry{
		provider:        provider,
		QueriesAnswered: queries,
		AnswerDuration:  duration,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
