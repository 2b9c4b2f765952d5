package render

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/sankey"
)

// SankeyChart renders the three-layer year/source/destination graph.
// Node ids are scope-qualified, so label collisions across years stay
// distinct; echarts displays the Name field, which here carries the id,
// with the human label as the value tooltip.
func SankeyChart(graph *sankey.Graph, o Options) *charts.Sankey {
	chart := charts.NewSankey()

	chart.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o)),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	nodes := make([]opts.SankeyNode, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		nodes = append(nodes, opts.SankeyNode{Name: n.ID, Value: n.Label})
	}

	links := make([]opts.SankeyLink, 0, len(graph.Links))
	for _, l := range graph.Links {
		links = append(links, opts.SankeyLink{
			Source: l.Source,
			Target: l.Target,
			Value:  float32(l.Value),
		})
	}

	chart.AddSeries("flows", nodes, links)

	return chart
}
