package observability_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/observability"
)

const meterName = "flowmap-test"

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	return string(body)
}

func TestNewTransformMetrics_InstrumentsRegister(t *testing.T) {
	t.Parallel()

	provider, _, err := observability.NewMeterProvider()
	require.NoError(t, err)

	defer provider.Shutdown(context.Background())

	metrics, metricsErr := observability.NewTransformMetrics(provider.Meter(meterName))

	require.NoError(t, metricsErr)
	require.NotNil(t, metrics)
}

func TestTransformMetrics_RecordedValuesScrapeable(t *testing.T) {
	t.Parallel()

	provider, handler, err := observability.NewMeterProvider()
	require.NoError(t, err)

	defer provider.Shutdown(context.Background())

	metrics, metricsErr := observability.NewTransformMetrics(provider.Meter(meterName))
	require.NoError(t, metricsErr)

	ctx := context.Background()

	metrics.RecordFlowDropped(ctx, "origin not in node set")
	metrics.RecordCoordinateFallback(ctx, "unknown_id")
	metrics.RecordMerge(ctx, 3, 250*time.Millisecond)
	metrics.RecordGraphBuild(ctx)

	body := scrape(t, handler)

	assert.True(t, strings.Contains(body, "flowmap_transform_flows_dropped"), "scrape output:\n%s", body)
	assert.True(t, strings.Contains(body, "flowmap_transform_coordinate_fallbacks"), "scrape output:\n%s", body)
	assert.True(t, strings.Contains(body, "flowmap_merge_duration"), "scrape output:\n%s", body)
}

func TestTransformMetrics_NilReceiverSafe(t *testing.T) {
	t.Parallel()

	var metrics *observability.TransformMetrics

	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordFlowDropped(ctx, "x")
		metrics.RecordCoordinateFallback(ctx, "x")
		metrics.RecordMerge(ctx, 2, time.Second)
		metrics.RecordGraphBuild(ctx)
	})
}
