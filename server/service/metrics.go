package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type MetricsRecorder interface {
	RecordLatency(ctx context.Context, planner string, duration time.Duration)
	IncrementCounter(ctx context.Context, name string, delta int)
}

// NoopMetrics は何も記録しない MetricsRecorder です。
type NoopMetrics struct{}

func (NoopMetrics) RecordLatency(ctx context.Context, planner string, duration time.Duration) {}

func (NoopMetrics) IncrementCounter(ctx context.Context, name string, delta int) {}

var _ MetricsRecorder = NoopMetrics{}

// OTelMetrics は OpenTelemetry の Meter に記録する MetricsRecorder です。
type OTelMetrics struct {
	latency  metric.Float64Histogram
	counters metric.Int64Counter
}

func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	latency, err := meter.Float64Histogram(
		"splashbot.decision.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("time spent deciding one turn"),
	)
	if err != nil {
		return nil, err
	}
	counters, err := meter.Int64Counter(
		"splashbot.decisions",
		metric.WithDescription("decisions by outcome"),
	)
	if err != nil {
		return nil, err
	}
	return &OTelMetrics{latency: latency, counters: counters}, nil
}

func (m *OTelMetrics) RecordLatency(ctx context.Context, planner string, duration time.Duration) {
	ms := float64(duration) / float64(time.Millisecond)
	m.latency.Record(ctx, ms, metric.WithAttributes(attribute.String("planner", planner)))
}

func (m *OTelMetrics) IncrementCounter(ctx context.Context, name string, delta int) {
	m.counters.Add(ctx, int64(delta), metric.WithAttributes(attribute.String("outcome", name)))
}
