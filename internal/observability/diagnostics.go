package observability

import (
	"context"
	"log/slog"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
)

// Diagnostics implements [flowgraph.DiagnosticSink] by logging degradations
// and bumping transform metrics. Fallbacks stay observable without ever
// failing a transform.
type Diagnostics struct {
	logger  *slog.Logger
	metrics *TransformMetrics
}

// NewDiagnostics creates a sink. A nil logger uses slog.Default; a nil
// metrics set disables counting.
func NewDiagnostics(logger *slog.Logger, metrics *TransformMetrics) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}

	return &Diagnostics{logger: logger, metrics: metrics}
}

// CoordinateFallback implements flowgraph.DiagnosticSink.
func (d *Diagnostics) CoordinateFallback(ref flowdata.LocationRef, reason flowgraph.FallbackReason) {
	d.logger.Warn("location fell back to default coordinate",
		"location_id", ref.ID,
		"location_name", ref.Name,
		"reason", string(reason))

	d.metrics.RecordCoordinateFallback(context.Background(), string(reason))
}

// FlowDropped implements flowgraph.DiagnosticSink.
func (d *Diagnostics) FlowDropped(originID, destID, periodID, reason string) {
	d.logger.Debug("flow dropped during graph construction",
		"origin_id", originID,
		"destination_id", destID,
		"period_id", periodID,
		"reason", reason)

	d.metrics.RecordFlowDropped(context.Background(), reason)
}
