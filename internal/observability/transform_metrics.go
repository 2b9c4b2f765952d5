// Package observability instruments the transform engine: dropped flows,
// coordinate fallbacks, and merge timings become OTel metrics scrapeable
// through a Prometheus endpoint, with slog as the logging surface.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFlowsDropped    = "flowmap.transform.flows.dropped.total"
	metricCoordFallbacks  = "flowmap.transform.coordinate.fallbacks.total"
	metricMergeDuration   = "flowmap.merge.duration.seconds"
	metricMergeYearCount  = "flowmap.merge.years.total"
	metricGraphBuildTotal = "flowmap.transform.graph.builds.total"

	attrReason = "reason"
)

// mergeDurationBuckets covers interactive fetches through slow multi-year
// backfills.
var mergeDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// TransformMetrics holds OTel instruments for the transform pipeline.
type TransformMetrics struct {
	flowsDropped   metric.Int64Counter
	coordFallbacks metric.Int64Counter
	mergeDuration  metric.Float64Histogram
	mergeYears     metric.Int64Counter
	graphBuilds    metric.Int64Counter
}

// NewTransformMetrics creates transform metric instruments from the meter.
func NewTransformMetrics(mt metric.Meter) (*TransformMetrics, error) {
	b := newMetricBuilder(mt)

	tm := &TransformMetrics{
		flowsDropped:   b.counter(metricFlowsDropped, "Flows dropped during graph construction", "{flow}"),
		coordFallbacks: b.counter(metricCoordFallbacks, "Location lookups that fell back to the default coordinate", "{lookup}"),
		mergeDuration:  b.histogram(metricMergeDuration, "Multi-year merge duration in seconds", "s", mergeDurationBuckets...),
		mergeYears:     b.counter(metricMergeYearCount, "Calendar years fetched by multi-year merges", "{year}"),
		graphBuilds:    b.counter(metricGraphBuildTotal, "Graph view builds", "{build}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return tm, nil
}

// RecordFlowDropped counts one dropped flow. Safe on a nil receiver.
func (tm *TransformMetrics) RecordFlowDropped(ctx context.Context, reason string) {
	if tm == nil {
		return
	}

	tm.flowsDropped.Add(ctx, 1, metric.WithAttributes(attribute.String(attrReason, reason)))
}

// RecordCoordinateFallback counts one coordinate fallback. Safe on a nil
// receiver.
func (tm *TransformMetrics) RecordCoordinateFallback(ctx context.Context, reason string) {
	if tm == nil {
		return
	}

	tm.coordFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String(attrReason, reason)))
}

// RecordMerge records a completed multi-year merge. Safe on a nil receiver.
func (tm *TransformMetrics) RecordMerge(ctx context.Context, years int, elapsed time.Duration) {
	if tm == nil {
		return
	}

	tm.mergeYears.Add(ctx, int64(years))
	tm.mergeDuration.Record(ctx, elapsed.Seconds())
}

// RecordGraphBuild counts one graph construction. Safe on a nil receiver.
func (tm *TransformMetrics) RecordGraphBuild(ctx context.Context) {
	if tm == nil {
		return
	}

	tm.graphBuilds.Add(ctx, 1)
}
