// Package observability provides OpenTelemetry integration and audit logging.
package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry provides observability features. It satisfies the executor
// package's Telemetry seam.
type Telemetry interface {
	// StartSpan starts a new trace span.
	StartSpan(ctx context.Context, name string) (context.Context, func())

	// RecordMetric records a metric value.
	RecordMetric(name string, value float64, labels map[string]string)
}

// TelemetryConfig configures telemetry.
type TelemetryConfig struct {
	// ServiceName is the service name for tracing.
	ServiceName string `yaml:"service_name"`

	// EnableTracing enables distributed tracing.
	EnableTracing bool `yaml:"enable_tracing"`

	// EnableMetrics enables metrics collection.
	EnableMetrics bool `yaml:"enable_metrics"`

	// MetricsPrefix is the prefix for all metrics.
	MetricsPrefix string `yaml:"metrics_prefix"`
}

// DefaultTelemetryConfig returns default configuration.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		ServiceName:   "shexec",
		EnableTracing: true,
		EnableMetrics: true,
		MetricsPrefix: "shexec_",
	}
}

// telemetry implements Telemetry on the global OTEL providers.
type telemetry struct {
	config TelemetryConfig
	tracer trace.Tracer
	meter  metric.Meter

	executionCounter  metric.Int64Counter
	executionDuration metric.Float64Histogram
}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry(config TelemetryConfig) (Telemetry, error) {
	t := &telemetry{
		config: config,
		tracer: otel.Tracer(config.ServiceName),
		meter:  otel.Meter(config.ServiceName),
	}

	var err error

	t.executionCounter, err = t.meter.Int64Counter(
		config.MetricsPrefix+"executions_total",
		metric.WithDescription("Total number of command executions"),
	)
	if err != nil {
		return nil, err
	}

	t.executionDuration, err = t.meter.Float64Histogram(
		config.MetricsPrefix+"execution_duration_ms",
		metric.WithDescription("Duration of command executions in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// StartSpan implements Telemetry.StartSpan.
func (t *telemetry) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	if !t.config.EnableTracing {
		return ctx, func() {}
	}

	ctx, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func() {
		span.End()
	}
}

// RecordMetric implements Telemetry.RecordMetric.
// Duration metrics (name suffix "_ms") go to the histogram; everything
// else increments the execution counter.
func (t *telemetry) RecordMetric(name string, value float64, labels map[string]string) {
	if !t.config.EnableMetrics {
		return
	}

	attrs := labelsToAttributes(labels)
	if isDurationMetric(name) {
		t.executionDuration.Record(context.Background(), value, metric.WithAttributes(attrs...))
		t.executionCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
		return
	}
	t.executionCounter.Add(context.Background(), int64(value), metric.WithAttributes(attrs...))
}

// isDurationMetric reports whether a metric name carries a duration in
// milliseconds and belongs on the histogram.
func isDurationMetric(name string) bool {
	return strings.HasSuffix(name, "_ms")
}

// labelsToAttributes converts labels to OTEL attributes.
func labelsToAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for k, v := range labels {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}

// NoopTelemetry returns a no-op telemetry implementation.
func NoopTelemetry() Telemetry {
	return &noopTelemetry{}
}

type noopTelemetry struct{}

func (t *noopTelemetry) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	return ctx, func() {}
}

func (t *noopTelemetry) RecordMetric(name string, value float64, labels map[string]string) {}
