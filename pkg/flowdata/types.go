// Package flowdata defines the migration data model shared by every
// transformation in the engine: time periods, location references, directional
// flow records, and per-location time series.
//
// All values are plain data. Transformations never mutate a decoded response;
// derived structures (graphs, matrices, sankey layers) are built in their own
// packages from copies of these records.
package flowdata

import "time"

// ResponseKind tags the shape of a decoded response.
// A response is either backed by per-location time series (the metadata-rich
// shape) or carries flow records only (aggregated backend responses).
type ResponseKind int

// Response shape variants.
const (
	// KindFlowOnly marks a response whose data[] section is empty; node-level
	// aggregates must be derived from the flow records themselves.
	KindFlowOnly ResponseKind = iota

	// KindLocationSeries marks a response carrying explicit per-location
	// move-in/move-out series.
	KindLocationSeries
)

// TimePeriod is one reporting bucket. The ID is a short opaque code
// (e.g. "dec24") and uniquely identifies the bucket; Start and End bound it.
type TimePeriod struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LocationRef identifies a province, district, subdistrict, or an aggregated
// bucket such as "Other Provinces". Identity is by ID; Name is display-only
// and may collide across distinct IDs.
type LocationRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// MigrationFlow is a single directional migration record: Count people moved
// from Origin to Destination within the period identified by PeriodID.
//
// Count is non-negative by dataset convention. ReturnCount, when present, is
// an alternate encoding of the reverse direction's magnitude (negative-signed
// in the raw feed); it must never be summed with Count. The engine always
// locates the independent reverse record instead and keeps ReturnCount as a
// display hint only.
type MigrationFlow struct {
	Origin      LocationRef
	Destination LocationRef
	PeriodID    string
	Count       float64
	Rate        *float64
	ReturnCount *float64
	ReturnRate  *float64
}

// SeriesPoint holds a location's aggregate movement within one period.
type SeriesPoint struct {
	MoveIn  float64
	MoveOut float64
	Net     *float64
}

// NetValue returns the explicit net when present, MoveIn-MoveOut otherwise.
func (p SeriesPoint) NetValue() float64 {
	if p.Net != nil {
		return *p.Net
	}

	return p.MoveIn - p.MoveOut
}

// LocationSeries is the per-period movement series for one location.
type LocationSeries struct {
	Location LocationRef
	Series   map[string]SeriesPoint // period id -> point.
}

// Point returns the series point for the period, zero-valued when the
// location has no record for it.
func (s LocationSeries) Point(periodID string) SeriesPoint {
	return s.Series[periodID]
}

// Metadata carries dataset-level descriptors passed through untouched.
type Metadata struct {
	Dataset   string `json:"dataset,omitempty"`
	Source    string `json:"source,omitempty"`
	Units     string `json:"units,omitempty"`
	Generated string `json:"generated,omitempty"`
}

// MigrationResponse is one decoded backend response.
type MigrationResponse struct {
	Metadata Metadata
	Periods  []TimePeriod
	Data     []LocationSeries
	Flows    []MigrationFlow
}

// Kind reports the response shape variant determined at decode time.
func (r *MigrationResponse) Kind() ResponseKind {
	if len(r.Data) > 0 {
		return KindLocationSeries
	}

	return KindFlowOnly
}

// TotalFlowCount sums Count across every flow record in the response.
func (r *MigrationResponse) TotalFlowCount() float64 {
	var total float64

	for _, f := range r.Flows {
		total += f.Count
	}

	return total
}
