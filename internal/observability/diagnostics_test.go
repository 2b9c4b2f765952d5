package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/observability"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestDiagnostics_CoordinateFallbackLogsWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	diag := observability.NewDiagnostics(captureLogger(&buf), nil)

	diag.CoordinateFallback(
		flowdata.LocationRef{ID: "agg-other", Name: "Other Provinces"},
		flowgraph.FallbackUnknownName,
	)

	out := buf.String()

	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "agg-other")
	assert.Contains(t, out, "unknown_name")
}

func TestDiagnostics_FlowDroppedLogsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	diag := observability.NewDiagnostics(captureLogger(&buf), nil)

	diag.FlowDropped("loc-a", "loc-b", "dec24", "origin not in node set")

	out := buf.String()

	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "loc-a")
	assert.Contains(t, out, "dec24")
}

func TestDiagnostics_ImplementsSinkWithoutMetrics(t *testing.T) {
	t.Parallel()

	var sink flowgraph.DiagnosticSink = observability.NewDiagnostics(nil, nil)

	assert.NotPanics(t, func() {
		sink.CoordinateFallback(flowdata.LocationRef{ID: "x"}, flowgraph.FallbackUnknownID)
		sink.FlowDropped("a", "b", "p", "r")
	})
}
