// Package matrix aggregates sparse district-level flow records into dense
// origin-by-destination matrices at province granularity for the chord view.
package matrix

import "strings"

// KeySeparator splits the province component from a composite district key
// such as "Nakhon Ratchasima#Pak Chong".
const KeySeparator = "#"

// Direction selects which axis a directional total sums over.
type Direction int

// Directional total axes.
const (
	// Outgoing sums a province's row: flow it sends to other provinces.
	Outgoing Direction = iota

	// Incoming sums a province's column: flow it receives.
	Incoming
)

// Record is one sparse district-level flow observation. SourceKey and
// DestinationKey are composite "Province#District" keys; a key without a
// separator is treated as a bare province.
type Record struct {
	SourceKey      string
	DestinationKey string
	Count          float64
}

// Matrix is a dense square aggregate. Cells[i][j] is the total flow from
// Names[i] to Names[j]. Diagonal cells hold intra-province movement.
type Matrix struct {
	Names []string
	Cells [][]float64
}

// Province extracts the province component of a composite key: everything
// before the first separator, or the whole key when none is present.
func Province(key string) string {
	if at := strings.Index(key, KeySeparator); at >= 0 {
		return key[:at]
	}

	return key
}

// BuildMatrix groups and sums records by (source province, destination
// province). When allowed is non-empty it is an ordered province allow-list
// applied symmetrically: a province absent from it appears in neither rows
// nor columns, and the matrix axes follow the allow-list's own order.
// Without a filter, axes follow first appearance across sources then
// destinations.
func BuildMatrix(records []Record, allowed []string) Matrix {
	names := axisNames(records, allowed)

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	cells := make([][]float64, len(names))
	for i := range cells {
		cells[i] = make([]float64, len(names))
	}

	for _, r := range records {
		src, srcOK := index[Province(r.SourceKey)]
		dst, dstOK := index[Province(r.DestinationKey)]

		if !srcOK || !dstOK {
			continue
		}

		cells[src][dst] += r.Count
	}

	return Matrix{Names: names, Cells: cells}
}

// axisNames resolves the shared row/column province list.
func axisNames(records []Record, allowed []string) []string {
	if len(allowed) > 0 {
		names := make([]string, len(allowed))
		copy(names, allowed)

		return names
	}

	seen := make(map[string]struct{})

	var names []string

	note := func(key string) {
		province := Province(key)
		if _, ok := seen[province]; ok {
			return
		}

		seen[province] = struct{}{}

		names = append(names, province)
	}

	for _, r := range records {
		note(r.SourceKey)
		note(r.DestinationKey)
	}

	return names
}

// DirectionalTotals sums each province's outgoing or incoming cells,
// excluding the diagonal: intra-province movement is not migration and must
// not double-count into either direction.
func DirectionalTotals(m Matrix, direction Direction) []float64 {
	totals := make([]float64, len(m.Names))

	for i := range m.Names {
		for j := range m.Names {
			if i == j {
				continue
			}

			if direction == Outgoing {
				totals[i] += m.Cells[i][j]
			} else {
				totals[i] += m.Cells[j][i]
			}
		}
	}

	return totals
}
