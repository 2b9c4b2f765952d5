// Package merge fans a migration query spanning multiple calendar years into
// one backend sub-query per year and merges the partial responses into a
// single logical response.
//
// The backend limits one query to one calendar year, so a multi-year range is
// the only case where the engine touches the fetch collaborator more than
// once. Sub-queries run concurrently; the merge is all-or-nothing.
package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
)

// ErrYearQueriesFailed is returned when one or more year sub-queries fail.
// Callers learn how many of N years failed, not which records were lost.
var ErrYearQueriesFailed = errors.New("year sub-queries failed")

// FetchFunc issues one backend query restricted to [start, end]. It is the
// external fetch collaborator; retries, auth, and coalescing live behind it.
type FetchFunc func(ctx context.Context, start, end time.Time) (*flowdata.MigrationResponse, error)

// flowKey identifies a flow record for duplicate collapsing across
// year-boundary buckets.
type flowKey struct {
	originID string
	destID   string
	periodID string
}

// AcrossYears resolves a query over [start, end]. A range within a single
// calendar year is fetched directly; a multi-year range is split into one
// sub-query per year, fetched concurrently, and merged deterministically.
func AcrossYears(ctx context.Context, start, end time.Time, fetch FetchFunc) (*flowdata.MigrationResponse, error) {
	if start.After(end) {
		start, end = end, start
	}

	if start.Year() == end.Year() {
		return fetch(ctx, start, end)
	}

	parts, err := fetchYearWindows(ctx, start, end, fetch)
	if err != nil {
		return nil, err
	}

	return mergeResponses(parts), nil
}

// fetchYearWindows runs one sub-query per calendar year concurrently and
// returns the responses in year order. Any failure fails the whole fetch.
func fetchYearWindows(ctx context.Context, start, end time.Time, fetch FetchFunc) ([]*flowdata.MigrationResponse, error) {
	years := end.Year() - start.Year() + 1

	responses := make([]*flowdata.MigrationResponse, years)
	errs := make([]error, years)

	var wg sync.WaitGroup

	for i := range years {
		year := start.Year() + i

		windowStart := time.Date(year, time.January, 1, 0, 0, 0, 0, start.Location())
		if year == start.Year() {
			windowStart = start
		}

		windowEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, end.Location())
		if year == end.Year() {
			windowEnd = end
		}

		wg.Add(1)

		go func(slot int, ws, we time.Time) {
			defer wg.Done()

			responses[slot], errs[slot] = fetch(ctx, ws, we)
		}(i, windowStart, windowEnd)
	}

	wg.Wait()

	failed := 0

	for _, err := range errs {
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return nil, fmt.Errorf("%w: %d of %d", ErrYearQueriesFailed, failed, years)
	}

	return responses, nil
}

// mergeResponses combines per-year responses in year order. Period catalogs
// union by id keeping the first-seen definition; flows sharing an
// (origin, destination, period) key sum their counts; location series are
// reconciled across years by location id.
func mergeResponses(parts []*flowdata.MigrationResponse) *flowdata.MigrationResponse {
	merged := &flowdata.MigrationResponse{}

	if len(parts) > 0 {
		merged.Metadata = parts[0].Metadata
	}

	seenPeriods := make(map[string]struct{})
	flowIndex := make(map[flowKey]int)
	seriesIndex := make(map[string]int)

	for partIdx, part := range parts {
		if part == nil {
			continue
		}

		for _, tp := range part.Periods {
			if _, ok := seenPeriods[tp.ID]; ok {
				continue
			}

			seenPeriods[tp.ID] = struct{}{}

			merged.Periods = append(merged.Periods, tp)
		}

		for _, f := range part.Flows {
			key := flowKey{originID: f.Origin.ID, destID: f.Destination.ID, periodID: f.PeriodID}

			if at, ok := flowIndex[key]; ok {
				merged.Flows[at].Count += f.Count

				continue
			}

			flowIndex[key] = len(merged.Flows)
			merged.Flows = append(merged.Flows, f)
		}

		mergeSeries(merged, seriesIndex, part.Data, partIdx > 0)
	}

	return merged
}

// mergeSeries folds one part's location series into the merged response.
// A location already present gets its later-year period buckets appended; a
// location absent from earlier years is added rather than dropped, and the
// mismatch is logged since the backend nominally keeps location sets
// identical across year windows.
func mergeSeries(merged *flowdata.MigrationResponse, index map[string]int, data []flowdata.LocationSeries, laterYear bool) {
	for _, ls := range data {
		at, ok := index[ls.Location.ID]
		if !ok {
			if laterYear && len(index) > 0 {
				slog.Warn("location set differs across year windows",
					"location_id", ls.Location.ID,
					"location_name", ls.Location.Name)
			}

			index[ls.Location.ID] = len(merged.Data)
			merged.Data = append(merged.Data, cloneSeries(ls))

			continue
		}

		for periodID, point := range ls.Series {
			if _, exists := merged.Data[at].Series[periodID]; !exists {
				merged.Data[at].Series[periodID] = point
			}
		}
	}
}

func cloneSeries(ls flowdata.LocationSeries) flowdata.LocationSeries {
	series := make(map[string]flowdata.SeriesPoint, len(ls.Series))
	for k, v := range ls.Series {
		series[k] = v
	}

	return flowdata.LocationSeries{Location: ls.Location, Series: series}
}
