package flowdata_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
)

const seriesPayload = `{
  "metadata": {"dataset": "internal-migration", "units": "people/month"},
  "time_periods": [
    {"id": "dec24", "start": "2024-12-01", "end": "2024-12-31"}
  ],
  "data": [
    {
      "location": {"id": "loc-bkk", "name": "Bangkok", "code": "TH-10"},
      "series": [
        {"time_period_id": "dec24", "move_in": 21433, "move_out": 5317}
      ]
    }
  ],
  "flows": [
    {
      "origin": {"id": "loc-cnx", "name": "Chiang Mai"},
      "destination": {"id": "loc-bkk", "name": "Bangkok"},
      "time_period_id": "dec24",
      "flow_count": 21433,
      "return_flow_count": -5317
    }
  ]
}`

const flowOnlyPayload = `{
  "metadata": {},
  "time_periods": [],
  "flows": [
    {
      "origin": {"id": "loc-a"},
      "destination": {"id": "loc-b"},
      "time_period_id": "jan25",
      "flow_count": 12
    }
  ]
}`

func TestDecodeResponse_SeriesPayload(t *testing.T) {
	t.Parallel()

	resp, err := flowdata.DecodeResponse(strings.NewReader(seriesPayload))
	require.NoError(t, err)

	assert.Equal(t, flowdata.KindLocationSeries, resp.Kind())
	assert.Equal(t, "internal-migration", resp.Metadata.Dataset)

	require.Len(t, resp.Periods, 1)
	assert.Equal(t, "dec24", resp.Periods[0].ID)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), resp.Periods[0].Start)

	require.Len(t, resp.Data, 1)
	point := resp.Data[0].Point("dec24")
	assert.InEpsilon(t, 21433.0, point.MoveIn, 1e-9)
	assert.InEpsilon(t, 5317.0, point.MoveOut, 1e-9)

	require.Len(t, resp.Flows, 1)
	flow := resp.Flows[0]
	assert.Equal(t, "loc-cnx", flow.Origin.ID)
	assert.Equal(t, "loc-bkk", flow.Destination.ID)
	require.NotNil(t, flow.ReturnCount)
	assert.InEpsilon(t, -5317.0, *flow.ReturnCount, 1e-9)
	assert.Nil(t, flow.Rate)
}

func TestDecodeResponse_FlowOnlyPayload(t *testing.T) {
	t.Parallel()

	resp, err := flowdata.DecodeResponse(strings.NewReader(flowOnlyPayload))
	require.NoError(t, err)

	assert.Equal(t, flowdata.KindFlowOnly, resp.Kind())
	assert.Empty(t, resp.Data)
	assert.InEpsilon(t, 12.0, resp.TotalFlowCount(), 1e-9)
}

func TestDecodeResponse_RejectsNegativeFlowCount(t *testing.T) {
	t.Parallel()

	payload := `{
		"metadata": {},
		"time_periods": [],
		"flows": [
			{
				"origin": {"id": "a"},
				"destination": {"id": "b"},
				"time_period_id": "jan25",
				"flow_count": -3
			}
		]
	}`

	_, err := flowdata.DecodeResponse(strings.NewReader(payload))

	require.ErrorIs(t, err, flowdata.ErrSchemaViolation)
}

func TestDecodeResponse_RejectsMissingMetadata(t *testing.T) {
	t.Parallel()

	_, err := flowdata.DecodeResponse(strings.NewReader(`{"time_periods": []}`))

	require.ErrorIs(t, err, flowdata.ErrSchemaViolation)
}

func TestDecodeResponse_RFC3339Timestamps(t *testing.T) {
	t.Parallel()

	payload := `{
		"metadata": {},
		"time_periods": [
			{"id": "dec24", "start": "2024-12-01T00:00:00Z", "end": "2024-12-31T23:59:59Z"}
		]
	}`

	resp, err := flowdata.DecodeResponse(strings.NewReader(payload))
	require.NoError(t, err)

	require.Len(t, resp.Periods, 1)
	assert.Equal(t, 2024, resp.Periods[0].Start.Year())
	assert.Equal(t, time.December, resp.Periods[0].End.Month())
}

func TestDecodeResponse_EmptyTimestampsAllowed(t *testing.T) {
	t.Parallel()

	payload := `{"metadata": {}, "time_periods": [{"id": "latest"}]}`

	resp, err := flowdata.DecodeResponse(strings.NewReader(payload))
	require.NoError(t, err)

	require.Len(t, resp.Periods, 1)
	assert.True(t, resp.Periods[0].Start.IsZero())
	assert.True(t, resp.Periods[0].End.IsZero())
}

func TestValidatePayload_ReportsFieldIssues(t *testing.T) {
	t.Parallel()

	issues, err := flowdata.ValidatePayload([]byte(`{"time_periods": []}`))
	require.NoError(t, err)

	require.NotEmpty(t, issues)
}

func TestValidatePayload_ValidPayload(t *testing.T) {
	t.Parallel()

	issues, err := flowdata.ValidatePayload([]byte(seriesPayload))
	require.NoError(t, err)

	assert.Empty(t, issues)
}

func TestSeriesPoint_NetValue(t *testing.T) {
	t.Parallel()

	implicit := flowdata.SeriesPoint{MoveIn: 10, MoveOut: 4}
	assert.InEpsilon(t, 6.0, implicit.NetValue(), 1e-9)

	explicit := -2.5
	overridden := flowdata.SeriesPoint{MoveIn: 10, MoveOut: 4, Net: &explicit}
	assert.InEpsilon(t, -2.5, overridden.NetValue(), 1e-9)
}
