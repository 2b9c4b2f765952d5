package sankey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/sankey"
)

func periodFlow(originID, destID, periodID string, count float64) flowdata.MigrationFlow {
	return flowdata.MigrationFlow{
		Origin:      flowdata.LocationRef{ID: originID, Name: originID},
		Destination: flowdata.LocationRef{ID: destID, Name: destID},
		PeriodID:    periodID,
		Count:       count,
	}
}

func linksBySource(g *sankey.Graph) map[string][]sankey.Link {
	out := make(map[string][]sankey.Link)
	for _, l := range g.Links {
		out[l.Source] = append(out[l.Source], l)
	}

	return out
}

func TestBuildGraph_ThreeLayers(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "dec24", 100),
	}

	graph := sankey.BuildGraph(flows, nil)

	require.Len(t, graph.Nodes, 3)

	layers := make(map[int]int)
	for _, n := range graph.Nodes {
		layers[n.Layer]++
	}

	assert.Equal(t, 1, layers[sankey.LayerYear])
	assert.Equal(t, 1, layers[sankey.LayerSource])
	assert.Equal(t, 1, layers[sankey.LayerDestination])
}

func TestBuildGraph_FlowConservationThroughSource(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "jan24", 100),
		periodFlow("cnx", "hkt", "jan24", 40),
		periodFlow("cnx", "bkk", "feb24", 60),
	}

	graph := sankey.BuildGraph(flows, nil)

	bySource := linksBySource(graph)

	yearLinks := bySource["y:2024"]
	require.Len(t, yearLinks, 1)
	assert.InEpsilon(t, 200.0, yearLinks[0].Value, 1e-9)

	var destTotal float64
	for _, l := range bySource["s:2024:cnx"] {
		destTotal += l.Value
	}

	assert.InEpsilon(t, yearLinks[0].Value, destTotal, 1e-9)
}

func TestBuildGraph_SelfLoopsExcluded(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("bkk", "bkk", "jan24", 500),
	}

	graph := sankey.BuildGraph(flows, nil)

	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Links)
}

func TestBuildGraph_UnresolvableYearSkipped(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "latest", 100),
		periodFlow("cnx", "bkk", "jan24", 50),
	}

	graph := sankey.BuildGraph(flows, nil)

	bySource := linksBySource(graph)

	require.Len(t, bySource["y:2024"], 1)
	assert.InEpsilon(t, 50.0, bySource["y:2024"][0].Value, 1e-9)
}

func TestBuildGraph_CatalogDatesResolveYears(t *testing.T) {
	t.Parallel()

	catalog := []flowdata.TimePeriod{
		{ID: "q1", Start: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "q1", 10),
	}

	graph := sankey.BuildGraph(flows, catalog)

	bySource := linksBySource(graph)

	assert.Len(t, bySource["y:2023"], 1)
}

func TestBuildGraph_DestinationsScopedPerSource(t *testing.T) {
	t.Parallel()

	// The same destination under two sources must stay two nodes.
	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "jan24", 10),
		periodFlow("hkt", "bkk", "jan24", 20),
	}

	graph := sankey.BuildGraph(flows, nil)

	destNodes := 0
	for _, n := range graph.Nodes {
		if n.Layer == sankey.LayerDestination {
			destNodes++

			assert.Equal(t, "bkk", n.Label)
		}
	}

	assert.Equal(t, 2, destNodes)
}

func TestBuildGraph_MonthBreakdownInCalendarOrder(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "mar24", 30),
		periodFlow("cnx", "bkk", "jan24", 10),
		periodFlow("cnx", "bkk", "feb24", 20),
	}

	graph := sankey.BuildGraph(flows, nil)

	bySource := linksBySource(graph)

	links := bySource["s:2024:cnx"]
	require.Len(t, links, 1)

	months := links[0].Months
	require.Len(t, months, 3)

	assert.Equal(t, time.January, months[0].Month)
	assert.Equal(t, time.February, months[1].Month)
	assert.Equal(t, time.March, months[2].Month)

	assert.InEpsilon(t, 10.0, months[0].Value, 1e-9)
	assert.InEpsilon(t, 60.0, links[0].Value, 1e-9)
}

func TestBuildGraph_YearLinksCarryNoMonths(t *testing.T) {
	t.Parallel()

	flows := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "jan24", 10),
	}

	graph := sankey.BuildGraph(flows, nil)

	bySource := linksBySource(graph)

	require.Len(t, bySource["y:2024"], 1)
	assert.Empty(t, bySource["y:2024"][0].Months)
}

func TestBuildGraph_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	forward := []flowdata.MigrationFlow{
		periodFlow("cnx", "bkk", "jan24", 10),
		periodFlow("hkt", "bkk", "jan25", 20),
		periodFlow("cnx", "hkt", "jan24", 5),
	}

	reversed := []flowdata.MigrationFlow{
		periodFlow("cnx", "hkt", "jan24", 5),
		periodFlow("hkt", "bkk", "jan25", 20),
		periodFlow("cnx", "bkk", "jan24", 10),
	}

	first := sankey.BuildGraph(forward, nil)
	second := sankey.BuildGraph(reversed, nil)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Links, second.Links)
}
