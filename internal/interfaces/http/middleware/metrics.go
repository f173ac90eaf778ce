package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricHTTPRequests = "lawai_http_requests_total"
	metricHTTPLatency  = "lawai_http_request_duration_seconds"
	metricHTTPInFlight = "lawai_http_requests_in_flight"
	metricHTTPBytesOut = "lawai_http_response_bytes_total"
)

type httpInstruments struct {
	requests *telemetry.Counter
	bytesOut *telemetry.Counter
	latency  *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)
	if in.requests, err = telemetry.NewCounter(meter, metricHTTPRequests, "Handled API requests", "{request}"); err != nil {
		return nil, err
	}
	if in.bytesOut, err = telemetry.NewCounter(meter, metricHTTPBytesOut, "Response body bytes written", "By"); err != nil {
		return nil, err
	}
	in.latency, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        metricHTTPLatency,
		Description: "Time to handle an API request",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	in.inFlight, err = meter.Int64UpDownCounter(metricHTTPInFlight,
		metric.WithDescription("Requests being handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *httpInstruments) record(ctx context.Context, c *gin.Context, elapsed time.Duration) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	attrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(c.Request.Method),
		telemetry.AttrHTTPRoute.String(route),
	}
	in.latency.RecordDuration(ctx, elapsed, attrs...)
	if size := c.Writer.Size(); size > 0 {
		in.bytesOut.Add(ctx, int64(size), attrs...)
	}
	in.requests.Inc(ctx, append(attrs, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))...)
}

// HTTPMetrics records per-route request counts and latency. Routes are
// labelled by their pattern, never the raw path. Without a meter the
// middleware only calls Next.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	var in *httpInstruments
	if meter != nil {
		in, _ = newHTTPInstruments(meter)
	}
	if in == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		in.inFlight.Add(ctx, 1)
		defer in.inFlight.Add(ctx, -1)

		c.Next()
		in.record(ctx, c, time.Since(start))
	}
}
