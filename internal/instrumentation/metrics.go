package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
)

// Metrics provides methods for recording observability metrics. The zero
// value is a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	mailOperationsTotal   metric.Int64Counter
	mailOperationDuration metric.Float64Histogram

	generationOperationsTotal   metric.Int64Counter
	generationOperationDuration metric.Float64Histogram

	activeSessions metric.Int64UpDownCounter
}

// NewMetrics creates a new Metrics instance with all instruments
// initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.mailOperationsTotal, err = meter.Int64Counter(
		"mail_api_operations_total",
		metric.WithDescription("Total number of mail provider API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail_api_operations_total counter: %w", err)
	}

	m.mailOperationDuration, err = meter.Float64Histogram(
		"mail_api_operation_duration_seconds",
		metric.WithDescription("Mail provider API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail_api_operation_duration_seconds histogram: %w", err)
	}

	m.generationOperationsTotal, err = meter.Int64Counter(
		"generation_operations_total",
		metric.WithDescription("Total number of AI generation operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation_operations_total counter: %w", err)
	}

	m.generationOperationDuration, err = meter.Float64Histogram(
		"generation_operation_duration_seconds",
		metric.WithDescription("AI generation operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation_operation_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of signed-in sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	return m, nil
}

// StatusOf maps an error outcome to the status metric label.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordMailOperation records one mail provider API operation with its
// status and duration.
func (m *Metrics) RecordMailOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.mailOperationsTotal == nil || m.mailOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.mailOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.mailOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordGenerationOperation records one AI generation operation with its
// status and duration.
func (m *Metrics) RecordGenerationOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.generationOperationsTotal == nil || m.generationOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.generationOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.generationOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the signed-in session gauge.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the signed-in session gauge.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return
	}
	m.activeSessions.Add(ctx, -1)
}
