package render

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/matrix"
)

// chordSymbolSize is the fixed province symbol size on the circular layout.
const chordSymbolSize = 12

// ChordChart renders a province matrix as a circular weighted graph, the
// chord-diagram analogue echarts offers. Diagonal cells are intra-province
// movement and draw as self-referencing links, which echarts elides, so they
// are skipped outright.
func ChordChart(m matrix.Matrix, o Options) *charts.Graph {
	chart := charts.NewGraph()

	chart.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(o)),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	outgoing := matrix.DirectionalTotals(m, matrix.Outgoing)

	nodes := make([]opts.GraphNode, 0, len(m.Names))
	for i, name := range m.Names {
		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			Value:      float32(outgoing[i]),
			SymbolSize: chordSymbolSize,
		})
	}

	var links []opts.GraphLink

	for i, row := range m.Cells {
		for j, cell := range row {
			if i == j || cell == 0 {
				continue
			}

			links = append(links, opts.GraphLink{
				Source: m.Names[i],
				Target: m.Names[j],
				Value:  float32(cell),
			})
		}
	}

	chart.AddSeries("provinces", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{Layout: "circular"}),
		charts.WithLineStyleOpts(opts.LineStyle{Curveness: 0.3}),
	)

	return chart
}
