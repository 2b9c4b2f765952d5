// Package flowgraph builds the node-link structure behind the flow-map view:
// positioned nodes per location and canonicalized bidirectional connections
// per location pair, with magnitudes normalized for rendering.
package flowgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/geo"
)

// DefaultUnits is the magnitude unit attached to connections when the
// response metadata does not name one.
const DefaultUnits = "people/month"

// FallbackReason explains why a location lookup fell back to the default
// coordinate.
type FallbackReason string

// Fallback reasons.
const (
	FallbackNone        FallbackReason = ""
	FallbackUnknownID   FallbackReason = "unknown_id"
	FallbackUnknownName FallbackReason = "unknown_name"
)

// Fallback reports the outcome of a coordinate lookup. Used is false when the
// location resolved normally.
type Fallback struct {
	Used   bool
	Reason FallbackReason
}

// LocationDirectory resolves coordinates and display names for locations.
// Implementations return the dataset's default coordinate with a flagged
// Fallback instead of failing; the transform never aborts on an unresolvable
// location.
type LocationDirectory interface {
	// Locate returns the location's coordinate. When the id and name are both
	// unknown, it returns the default coordinate and a Fallback explaining why.
	Locate(ref flowdata.LocationRef) (geo.Coordinate, Fallback)

	// DisplayName returns the human label for the location.
	DisplayName(ref flowdata.LocationRef) string
}

// DiagnosticSink receives the transform's observable degradations. No method
// may block; implementations typically log and bump counters.
type DiagnosticSink interface {
	CoordinateFallback(ref flowdata.LocationRef, reason FallbackReason)
	FlowDropped(originID, destID, periodID, reason string)
}

// GraphNode is one positioned location in the flow map. Nodes are built fresh
// per transform call and never mutated afterwards.
type GraphNode struct {
	ID      string
	Label   string
	Tooltip string
	X       float64
	Y       float64
	Radius  float64
}

// ConnectionMeta carries the raw magnitudes behind a connection's normalized
// rates.
type ConnectionMeta struct {
	AbsoluteTo   float64
	AbsoluteFrom float64
	Units        string
}

// GraphConnection is one bidirectional link between two nodes. FromID and
// ToID always reference ids present in the accompanying node set. ToRate is
// the normalized magnitude of the FromID->ToID direction (positive), FromRate
// the reverse direction (negative). A self-loop populates only the to
// direction.
type GraphConnection struct {
	FromID   string
	ToID     string
	ToRate   float64
	FromRate float64
	Meta     ConnectionMeta
}

// Graph is the flow-map view output.
type Graph struct {
	Nodes       []GraphNode
	Connections []GraphConnection
}

// Options configures a graph build.
type Options struct {
	Canvas      geo.Canvas
	Directory   LocationDirectory
	Diagnostics DiagnosticSink
	Units       string
}

// nopSink discards diagnostics.
type nopSink struct{}

func (nopSink) CoordinateFallback(flowdata.LocationRef, FallbackReason) {}

func (nopSink) FlowDropped(string, string, string, string) {}

// nopDirectory resolves nothing: every lookup yields the zero coordinate with
// a flagged fallback, and display names come from the record itself.
type nopDirectory struct{}

func (nopDirectory) Locate(flowdata.LocationRef) (geo.Coordinate, Fallback) {
	return geo.Coordinate{}, Fallback{Used: true, Reason: FallbackUnknownID}
}

func (nopDirectory) DisplayName(ref flowdata.LocationRef) string {
	if ref.Name != "" {
		return ref.Name
	}

	return ref.ID
}

// pairAccum accumulates directional magnitudes for one canonical pair.
type pairAccum struct {
	fromRef  flowdata.LocationRef
	toRef    flowdata.LocationRef
	absTo    float64
	absFrom  float64
	selfLoop bool
}

// volume tracks a location's accumulated movement when nodes are derived
// from flows.
type volume struct {
	ref     flowdata.LocationRef
	moveIn  float64
	moveOut float64
}

// BuildGraph turns the directional flow records of one period into a node
// set and canonicalized bidirectional connections.
//
// When series is non-empty, one node is built per known location; otherwise
// nodes are derived from the locations appearing in the period's flows, with
// move-in/move-out accumulated from the flow counts. Flows whose endpoints
// are absent from the node set (aggregated buckets without coordinates) are
// dropped through the diagnostic sink, never an error. All numeric output is
// independent of the input record order.
func BuildGraph(flows []flowdata.MigrationFlow, periodID string, series []flowdata.LocationSeries, opts Options) *Graph {
	if opts.Diagnostics == nil {
		opts.Diagnostics = nopSink{}
	}

	if opts.Directory == nil {
		opts.Directory = nopDirectory{}
	}

	if opts.Units == "" {
		opts.Units = DefaultUnits
	}

	periodFlows := filterPeriod(flows, periodID)

	var nodes []GraphNode

	if len(series) > 0 {
		nodes = nodesFromSeries(series, periodID, opts)
	} else {
		nodes = nodesFromFlows(periodFlows, opts)
	}

	nodeIDs := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		nodeIDs[n.ID] = struct{}{}
	}

	connections := buildConnections(periodFlows, nodeIDs, opts)

	return &Graph{Nodes: nodes, Connections: connections}
}

func filterPeriod(flows []flowdata.MigrationFlow, periodID string) []flowdata.MigrationFlow {
	out := make([]flowdata.MigrationFlow, 0, len(flows))

	for _, f := range flows {
		if f.PeriodID == periodID {
			out = append(out, f)
		}
	}

	return out
}

// nodesFromSeries builds one node per known location using its explicit
// movement series for the period.
func nodesFromSeries(series []flowdata.LocationSeries, periodID string, opts Options) []GraphNode {
	nodes := make([]GraphNode, 0, len(series))

	for _, ls := range series {
		point := ls.Point(periodID)

		nodes = append(nodes, buildNode(ls.Location, point.MoveIn, point.MoveOut, opts))
	}

	return nodes
}

// nodesFromFlows derives nodes from the locations referenced by the period's
// flows, accumulating absolute counts into per-location volumes. Aggregation
// is commutative; only node order follows first appearance.
func nodesFromFlows(periodFlows []flowdata.MigrationFlow, opts Options) []GraphNode {
	volumes := make(map[string]*volume, len(periodFlows))

	var order []string

	accumulate := func(ref flowdata.LocationRef) *volume {
		v, ok := volumes[ref.ID]
		if !ok {
			v = &volume{ref: ref}
			volumes[ref.ID] = v

			order = append(order, ref.ID)
		}

		return v
	}

	for _, f := range periodFlows {
		count := math.Abs(f.Count)

		accumulate(f.Origin).moveOut += count
		accumulate(f.Destination).moveIn += count
	}

	nodes := make([]GraphNode, 0, len(order))

	for _, id := range order {
		v := volumes[id]

		nodes = append(nodes, buildNode(v.ref, v.moveIn, v.moveOut, opts))
	}

	return nodes
}

func buildNode(ref flowdata.LocationRef, moveIn, moveOut float64, opts Options) GraphNode {
	coord, fallback := opts.Directory.Locate(ref)
	if fallback.Used {
		opts.Diagnostics.CoordinateFallback(ref, fallback.Reason)
	}

	point := geo.Project(coord, opts.Canvas)
	label := opts.Directory.DisplayName(ref)

	return GraphNode{
		ID:      ref.ID,
		Label:   label,
		Tooltip: nodeTooltip(label, moveIn, moveOut),
		X:       point.X,
		Y:       point.Y,
		Radius:  NodeRadius(moveIn, moveOut),
	}
}

func nodeTooltip(label string, moveIn, moveOut float64) string {
	return fmt.Sprintf("%s: in %s / out %s",
		label,
		humanize.CommafWithDigits(moveIn, 0),
		humanize.CommafWithDigits(moveOut, 0))
}

// buildConnections canonicalizes directional flows into unordered-pair
// connections. The pair orientation is fixed by ordering the two ids, so the
// output does not depend on which direction appeared first.
func buildConnections(periodFlows []flowdata.MigrationFlow, nodeIDs map[string]struct{}, opts Options) []GraphConnection {
	pairs := make(map[string]*pairAccum)

	var order []string

	var maxCount float64

	for _, f := range periodFlows {
		if _, ok := nodeIDs[f.Origin.ID]; !ok {
			opts.Diagnostics.FlowDropped(f.Origin.ID, f.Destination.ID, f.PeriodID, "origin not in node set")

			continue
		}

		if _, ok := nodeIDs[f.Destination.ID]; !ok {
			opts.Diagnostics.FlowDropped(f.Origin.ID, f.Destination.ID, f.PeriodID, "destination not in node set")

			continue
		}

		count := math.Abs(f.Count)
		if count > maxCount {
			maxCount = count
		}

		key, forward := pairKey(f.Origin.ID, f.Destination.ID)

		accum, ok := pairs[key]
		if !ok {
			accum = &pairAccum{selfLoop: f.Origin.ID == f.Destination.ID}

			if forward {
				accum.fromRef, accum.toRef = f.Origin, f.Destination
			} else {
				accum.fromRef, accum.toRef = f.Destination, f.Origin
			}

			pairs[key] = accum

			order = append(order, key)
		}

		if forward {
			accum.absTo += count
		} else {
			accum.absFrom += count
		}
	}

	connections := make([]GraphConnection, 0, len(order))

	for _, key := range order {
		accum := pairs[key]

		conn := GraphConnection{
			FromID: accum.fromRef.ID,
			ToID:   accum.toRef.ID,
			ToRate: FlowRate(accum.absTo, maxCount),
			Meta: ConnectionMeta{
				AbsoluteTo:   accum.absTo,
				AbsoluteFrom: accum.absFrom,
				Units:        opts.Units,
			},
		}

		if !accum.selfLoop {
			conn.FromRate = FlowRate(-accum.absFrom, maxCount)
		}

		connections = append(connections, conn)
	}

	// Key order is first-seen; sort for a stable output independent of
	// record order.
	sort.Slice(connections, func(i, j int) bool {
		if connections[i].FromID != connections[j].FromID {
			return connections[i].FromID < connections[j].FromID
		}

		return connections[i].ToID < connections[j].ToID
	})

	return connections
}

// pairKey derives the canonical unordered key for two location ids and
// reports whether the originID->destID direction is the pair's forward
// direction. A self-loop is always forward.
func pairKey(originID, destID string) (string, bool) {
	if originID <= destID {
		return originID + "\x00" + destID, true
	}

	return destID + "\x00" + originID, false
}
