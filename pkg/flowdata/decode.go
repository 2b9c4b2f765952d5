package flowdata

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed response_schema.json
var responseSchemaJSON string

// ErrSchemaViolation is returned when a payload fails schema validation.
var ErrSchemaViolation = errors.New("response payload violates schema")

// Accepted timestamp layouts for period boundaries. The backend emits RFC
// 3339; older exports carry bare dates.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

// wireLocation mirrors the JSON location object.
type wireLocation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id"`
}

// wirePeriod mirrors the JSON time period object.
type wirePeriod struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// wireSeriesPoint mirrors one entry of a location's series array.
type wireSeriesPoint struct {
	TimePeriodID string   `json:"time_period_id"`
	MoveIn       float64  `json:"move_in"`
	MoveOut      float64  `json:"move_out"`
	Net          *float64 `json:"net"`
}

// wireLocationData mirrors one entry of the data array.
type wireLocationData struct {
	Location wireLocation      `json:"location"`
	Series   []wireSeriesPoint `json:"series"`
}

// wireFlow mirrors one entry of the flows array.
type wireFlow struct {
	Origin          wireLocation `json:"origin"`
	Destination     wireLocation `json:"destination"`
	TimePeriodID    string       `json:"time_period_id"`
	FlowCount       float64      `json:"flow_count"`
	FlowRate        *float64     `json:"flow_rate"`
	ReturnFlowCount *float64     `json:"return_flow_count"`
	ReturnFlowRate  *float64     `json:"return_flow_rate"`
}

// wireResponse mirrors the full JSON response envelope.
type wireResponse struct {
	Metadata Metadata           `json:"metadata"`
	Periods  []wirePeriod       `json:"time_periods"`
	Data     []wireLocationData `json:"data"`
	Flows    []wireFlow         `json:"flows"`
}

// DecodeResponse validates raw JSON against the response schema and decodes
// it into a typed MigrationResponse. Malformed payloads are rejected here so
// the transforms downstream can assume well-formed input.
func DecodeResponse(r io.Reader) (*MigrationResponse, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read response payload: %w", err)
	}

	validateErr := validatePayload(raw)
	if validateErr != nil {
		return nil, validateErr
	}

	var wire wireResponse

	unmarshalErr := json.Unmarshal(raw, &wire)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("decode response payload: %w", unmarshalErr)
	}

	return wire.toModel()
}

// ValidationIssue describes a single schema violation in a response payload.
type ValidationIssue struct {
	Field       string
	Description string
}

// ValidatePayload checks raw JSON against the embedded response schema and
// returns one issue per violation. A nil slice means the payload conforms.
func ValidatePayload(raw []byte) ([]ValidationIssue, error) {
	schemaLoader := gojsonschema.NewStringLoader(responseSchemaJSON)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate response payload: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]ValidationIssue, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, ValidationIssue{Field: desc.Field(), Description: desc.Description()})
	}

	return issues, nil
}

// validatePayload checks raw JSON against the embedded response schema.
func validatePayload(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(responseSchemaJSON)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate response payload: %w", err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(issues, "; "))
}

func (w *wireResponse) toModel() (*MigrationResponse, error) {
	resp := &MigrationResponse{
		Metadata: w.Metadata,
		Periods:  make([]TimePeriod, 0, len(w.Periods)),
		Data:     make([]LocationSeries, 0, len(w.Data)),
		Flows:    make([]MigrationFlow, 0, len(w.Flows)),
	}

	for _, p := range w.Periods {
		period, err := p.toModel()
		if err != nil {
			return nil, err
		}

		resp.Periods = append(resp.Periods, period)
	}

	for _, d := range w.Data {
		resp.Data = append(resp.Data, d.toModel())
	}

	for _, f := range w.Flows {
		resp.Flows = append(resp.Flows, f.toModel())
	}

	return resp, nil
}

func (w wirePeriod) toModel() (TimePeriod, error) {
	start, startErr := parseTimestamp(w.Start)
	if startErr != nil {
		return TimePeriod{}, fmt.Errorf("period %s start: %w", w.ID, startErr)
	}

	end, endErr := parseTimestamp(w.End)
	if endErr != nil {
		return TimePeriod{}, fmt.Errorf("period %s end: %w", w.ID, endErr)
	}

	return TimePeriod{ID: w.ID, Start: start, End: end}, nil
}

func (w wireLocation) toModel() LocationRef {
	return LocationRef{ID: w.ID, Name: w.Name, Code: w.Code, ParentID: w.ParentID}
}

func (w wireLocationData) toModel() LocationSeries {
	series := make(map[string]SeriesPoint, len(w.Series))

	for _, p := range w.Series {
		series[p.TimePeriodID] = SeriesPoint{
			MoveIn:  p.MoveIn,
			MoveOut: p.MoveOut,
			Net:     p.Net,
		}
	}

	return LocationSeries{Location: w.Location.toModel(), Series: series}
}

func (w wireFlow) toModel() MigrationFlow {
	return MigrationFlow{
		Origin:      w.Origin.toModel(),
		Destination: w.Destination.toModel(),
		PeriodID:    w.TimePeriodID,
		Count:       w.FlowCount,
		Rate:        w.FlowRate,
		ReturnCount: w.ReturnFlowCount,
		ReturnRate:  w.ReturnFlowRate,
	}
}

// parseTimestamp parses a period boundary. Empty strings decode to the zero
// time: synthetic period ids carry no dates and the resolver handles them.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	var lastErr error

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, lastErr)
}
