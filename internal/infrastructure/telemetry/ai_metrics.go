package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// AIMetrics counts assistant provider calls and their latency
type AIMetrics struct {
	calls    *Counter
	duration *Histogram
}

// NewAIMetrics registers the assistant instruments on meter
func NewAIMetrics(meter metric.Meter) (*AIMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	calls, err := NewCounter(meter, "lawai_ai_calls_total", "Assistant provider calls", "{calls}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "lawai_ai_call_duration_seconds",
		Description: "Assistant provider call latency",
		Unit:        "s",
		Boundaries:  AIDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &AIMetrics{calls: calls, duration: duration}, nil
}

// RecordAICall records one call. Canned replies carry a zero duration and
// are counted only.
func (m *AIMetrics) RecordAICall(ctx context.Context, operation, outcome string, elapsed time.Duration) {
	attrs := []attribute.KeyValue{AttrOperation.String(operation), AttrOutcome.String(outcome)}
	m.calls.Inc(ctx, attrs...)
	if elapsed > 0 {
		m.duration.RecordDuration(ctx, elapsed, attrs...)
	}
}
