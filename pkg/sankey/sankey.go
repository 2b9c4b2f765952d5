// Package sankey aggregates flow records into the strictly three-layer
// weighted graph behind the sankey view: calendar year, source location
// scoped to the year, destination location scoped to year and source.
package sankey

import (
	"fmt"
	"sort"
	"time"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/period"
)

// Layer indices of the three-layer graph.
const (
	LayerYear        = 0
	LayerSource      = 1
	LayerDestination = 2
)

// Node is one sankey node. ID encodes the node's scope (year, year+source,
// or year+source+destination); Label is the display text.
type Node struct {
	ID    string
	Label string
	Layer int
}

// MonthFlow is one month's contribution to a link, kept as tooltip metadata.
type MonthFlow struct {
	Month    time.Month
	PeriodID string
	Value    float64
}

// Link is one weighted edge. Source and Target reference Node IDs. Months is
// the per-month breakdown in calendar order; it is populated only on
// source->destination links.
type Link struct {
	Source string
	Target string
	Value  float64
	Months []MonthFlow
}

// Graph is the sankey view output. Year->source link weights equal the sum
// of that source's destination link weights, so flow is conserved through
// the layers.
type Graph struct {
	Nodes []Node
	Links []Link
}

// tripleKey identifies one (year, source, destination) aggregate.
type tripleKey struct {
	year     int
	sourceID string
	destID   string
}

// tripleAccum aggregates a triple's total and per-month values.
type tripleAccum struct {
	source  flowdata.LocationRef
	dest    flowdata.LocationRef
	total   float64
	byMonth map[time.Month]*MonthFlow
}

// BuildGraph aggregates flows into the layered graph. Self-loops are
// excluded entirely. Flows whose period cannot be resolved to a calendar
// year (unknown id outside the synthetic code convention) are skipped.
// Output ordering is deterministic: years ascending, then source and
// destination labels.
func BuildGraph(flows []flowdata.MigrationFlow, periods []flowdata.TimePeriod) *Graph {
	triples := make(map[tripleKey]*tripleAccum)

	for _, f := range flows {
		if f.Origin.ID == f.Destination.ID {
			continue
		}

		year, ok := period.YearOf(f.PeriodID, periods)
		if !ok {
			continue
		}

		key := tripleKey{year: year, sourceID: f.Origin.ID, destID: f.Destination.ID}

		accum, exists := triples[key]
		if !exists {
			accum = &tripleAccum{
				source:  f.Origin,
				dest:    f.Destination,
				byMonth: make(map[time.Month]*MonthFlow),
			}
			triples[key] = accum
		}

		accum.total += f.Count

		month, monthOK := period.MonthOf(f.PeriodID, periods)
		if monthOK {
			mf, seen := accum.byMonth[month]
			if !seen {
				mf = &MonthFlow{Month: month, PeriodID: f.PeriodID}
				accum.byMonth[month] = mf
			}

			mf.Value += f.Count
		}
	}

	return assemble(triples)
}

func assemble(triples map[tripleKey]*tripleAccum) *Graph {
	keys := make([]tripleKey, 0, len(triples))
	for key := range triples {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}

		if keys[i].sourceID != keys[j].sourceID {
			return keys[i].sourceID < keys[j].sourceID
		}

		return keys[i].destID < keys[j].destID
	})

	graph := &Graph{}
	nodeSeen := make(map[string]struct{})
	sourceTotals := make(map[string]float64)
	sourceYears := make(map[string]int)

	addNode := func(node Node) {
		if _, ok := nodeSeen[node.ID]; ok {
			return
		}

		nodeSeen[node.ID] = struct{}{}

		graph.Nodes = append(graph.Nodes, node)
	}

	for _, key := range keys {
		accum := triples[key]

		yearID := yearNodeID(key.year)
		sourceID := sourceNodeID(key.year, key.sourceID)
		destID := destNodeID(key.year, key.sourceID, key.destID)

		addNode(Node{ID: yearID, Label: fmt.Sprintf("%d", key.year), Layer: LayerYear})
		addNode(Node{ID: sourceID, Label: displayName(accum.source), Layer: LayerSource})
		addNode(Node{ID: destID, Label: displayName(accum.dest), Layer: LayerDestination})

		graph.Links = append(graph.Links, Link{
			Source: sourceID,
			Target: destID,
			Value:  accum.total,
			Months: sortedMonths(accum.byMonth),
		})

		sourceTotals[sourceID] += accum.total
		sourceYears[sourceID] = key.year
	}

	// Year->source links carry the conserved source totals. Nodes were added
	// in key order, so iterating them keeps the output deterministic.
	for _, node := range graph.Nodes {
		if node.Layer != LayerSource {
			continue
		}

		graph.Links = append(graph.Links, Link{
			Source: yearNodeID(sourceYears[node.ID]),
			Target: node.ID,
			Value:  sourceTotals[node.ID],
		})
	}

	return graph
}

// sortedMonths flattens the month breakdown in calendar order, independent
// of input record order.
func sortedMonths(byMonth map[time.Month]*MonthFlow) []MonthFlow {
	months := make([]MonthFlow, 0, len(byMonth))
	for _, mf := range byMonth {
		months = append(months, *mf)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	return months
}

func displayName(ref flowdata.LocationRef) string {
	if ref.Name != "" {
		return ref.Name
	}

	return ref.ID
}

func yearNodeID(year int) string {
	return fmt.Sprintf("y:%d", year)
}

func sourceNodeID(year int, sourceID string) string {
	return fmt.Sprintf("s:%d:%s", year, sourceID)
}

func destNodeID(year int, sourceID, destID string) string {
	return fmt.Sprintf("d:%d:%s:%s", year, sourceID, destID)
}
