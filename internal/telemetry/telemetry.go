// Package telemetry exports per-binding outcome counts and durations over
// OTLP, satisfying pkg/processor.Recorder.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterName          = "github.com/kubewarden/capability-runtime"
	instrumentBindings = "capability_bindings_total"
	instrumentDuration = "capability_binding_duration_seconds"
)

// Recorder records binding outcomes and durations as OpenTelemetry metric
// instruments. The zero value is not usable; construct with New.
type Recorder struct {
	provider *sdkmetric.MeterProvider
	bindings metric.Int64Counter
	duration metric.Float64Histogram
}

// New dials endpoint (an OTLP/gRPC collector address) and registers the
// two instruments Process reports through. The returned Recorder's
// Shutdown must be called to flush pending exports on process exit.
func New(ctx context.Context, endpoint string) (*Recorder, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("building otlp metric exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
	)
	meter := provider.Meter(meterName)

	bindings, err := meter.Int64Counter(instrumentBindings,
		metric.WithDescription("Number of capability binding invocations, by outcome."))
	if err != nil {
		return nil, fmt.Errorf("registering %s counter: %w", instrumentBindings, err)
	}

	duration, err := meter.Float64Histogram(instrumentDuration,
		metric.WithDescription("Duration of capability binding callbacks."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("registering %s histogram: %w", instrumentDuration, err)
	}

	return &Recorder{provider: provider, bindings: bindings, duration: duration}, nil
}

// RecordBinding implements pkg/processor.Recorder.
func (r *Recorder) RecordBinding(capabilityName, outcome string, duration time.Duration) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("capability", capabilityName),
		attribute.String("outcome", outcome),
	)
	r.bindings.Add(ctx, 1, attrs)
	if duration > 0 {
		r.duration.Record(ctx, duration.Seconds(), attrs)
	}
}

// Shutdown flushes any buffered metrics and closes the exporter
// connection. It should be called once, during graceful shutdown.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if err := r.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}
