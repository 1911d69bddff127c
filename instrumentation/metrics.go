package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricAPICallsTotal         = "discord.api.calls.total"
	MetricAPIDuration           = "discord.api.duration"
	MetricAPIErrorsTotal        = "discord.api.errors.total"
	MetricAuthorizationURLBuilt = "discord.authorization_url.built"
)

// Error types recorded on MetricAPIErrorsTotal
const (
	ErrorTypeClient    = "client_error"
	ErrorTypeServer    = "server_error"
	ErrorTypeTransport = "transport_error"
	ErrorTypeSchema    = "schema_error"
	ErrorTypeUnknown   = "unknown"
)

// Metrics holds all metric instruments for Discord API calls
type Metrics struct {
	APICallsTotal         metric.Int64Counter
	APIDuration           metric.Float64Histogram
	APIErrorsTotal        metric.Int64Counter
	AuthorizationURLBuilt metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.APICallsTotal, err = meter.Int64Counter(
		MetricAPICallsTotal,
		metric.WithDescription("Total number of Discord API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricAPICallsTotal, err)
	}

	m.APIDuration, err = meter.Float64Histogram(
		MetricAPIDuration,
		metric.WithDescription("Discord API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricAPIDuration, err)
	}

	m.APIErrorsTotal, err = meter.Int64Counter(
		MetricAPIErrorsTotal,
		metric.WithDescription("Total number of failed Discord API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricAPIErrorsTotal, err)
	}

	m.AuthorizationURLBuilt, err = meter.Int64Counter(
		MetricAuthorizationURLBuilt,
		metric.WithDescription("Number of authorization URLs built"),
		metric.WithUnit("{url}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricAuthorizationURLBuilt, err)
	}

	return m, nil
}

// RecordAPICall records one Discord API round trip. statusCode is 0 when no
// response was received. errorType is ignored when err is nil; pass "" to
// derive it from the status code.
func (m *Metrics) RecordAPICall(ctx context.Context, operation string, statusCode int, durationMs float64, errorType string, err error) {
	m.APICallsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Int("status", statusCode),
	))
	m.APIDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("operation", operation),
	))

	if err != nil {
		if errorType == "" {
			errorType = classifyStatus(statusCode)
		}
		m.APIErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("error_type", errorType),
		))
	}
}

// RecordAuthorizationURLBuilt records an authorization URL being handed out
func (m *Metrics) RecordAuthorizationURLBuilt(ctx context.Context, withState bool) {
	m.AuthorizationURLBuilt.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("with_state", withState),
	))
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorTypeClient
	case statusCode >= 500:
		return ErrorTypeServer
	default:
		return ErrorTypeUnknown
	}
}
