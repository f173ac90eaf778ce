package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func findMetricByName(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics_NilMeterPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(HTTPMetrics(nil)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics_RecordsByRoute(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/api/clients/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, id := range []string{"1", "2", "3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/"+id, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	total := findMetricByName(rm, metricHTTPRequests)
	require.NotNil(t, total)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	route, ok := sum.DataPoints[0].Attributes.Value("http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/clients/:id", route.AsString())

	assert.NotNil(t, findMetricByName(rm, metricHTTPLatency))

	bytesOut := findMetricByName(rm, metricHTTPBytesOut)
	require.NotNil(t, bytesOut)
	bytesSum, ok := bytesOut.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, bytesSum.DataPoints, 1)
	assert.Equal(t, int64(6), bytesSum.DataPoints[0].Value)
}
