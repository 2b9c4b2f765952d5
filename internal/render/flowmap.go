package render

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
)

// Edge width scaling: normalized rates land in [1, 50]; dividing keeps the
// widest edge readable.
const edgeWidthDivisor = 5.0

// minEdgeWidth keeps faint flows visible.
const minEdgeWidth = 0.5

// FlowMapChart builds the node-link flow map from a graph view. Node
// positions come in pre-projected, so the chart uses a fixed layout.
func FlowMapChart(graph *flowgraph.Graph, o Options) *charts.Graph {
	chart := charts.NewGraph()

	chart.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o)),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	nodes := make([]opts.GraphNode, 0, len(graph.Nodes))

	for _, n := range graph.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       n.Label,
			X:          float32(n.X),
			Y:          float32(n.Y),
			Fixed:      opts.Bool(true),
			SymbolSize: n.Radius,
			Value:      float32(n.Radius),
		})
	}

	labelByID := make(map[string]string, len(graph.Nodes))
	for _, n := range graph.Nodes {
		labelByID[n.ID] = n.Label
	}

	links := make([]opts.GraphLink, 0, len(graph.Connections))

	for _, c := range graph.Connections {
		links = append(links, opts.GraphLink{
			Source: labelByID[c.FromID],
			Target: labelByID[c.ToID],
			Value:  float32(c.Meta.AbsoluteTo + c.Meta.AbsoluteFrom),
		})
	}

	chart.AddSeries("migration", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{Layout: "none"}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Width:     edgeWidth(graph.Connections),
			Curveness: 0.2,
		}),
	)

	return chart
}

// edgeWidth derives one shared line width from the strongest connection.
// Echarts styles lines per series, so the width reflects the dominant flow.
func edgeWidth(connections []flowgraph.GraphConnection) float32 {
	var maxRate float64

	for _, c := range connections {
		rate := math.Max(math.Abs(c.ToRate), math.Abs(c.FromRate))
		if rate > maxRate {
			maxRate = rate
		}
	}

	width := maxRate / edgeWidthDivisor
	if width < minEdgeWidth {
		width = minEdgeWidth
	}

	return float32(width)
}
