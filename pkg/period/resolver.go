// Package period resolves the set of reporting periods present in a response
// and formats period labels for display.
package period

import (
	"strconv"
	"strings"
	"time"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
)

// monthLabel is the display layout for a single month.
const monthLabel = "Jan 2006"

// rangeSeparator joins the two ends of a multi-month label.
const rangeSeparator = " – "

// syntheticCodeLen is the length of a {3-letter-month}{2-digit-year} code.
const syntheticCodeLen = 5

// syntheticCenturyBase anchors two-digit years of synthetic period codes.
// Period codes only appear in the API era, so 20xx is assumed.
const syntheticCenturyBase = 2000

// monthsByCode maps lowercase three-letter month codes to calendar months.
var monthsByCode = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Period is one resolved reporting bucket with its display label.
type Period struct {
	ID    string
	Label string
}

// Periods extracts the ordered distinct periods of a response. The explicit
// period catalog is preferred; when it is absent or empty the set is derived
// from the flow records in order of first appearance.
func Periods(resp *flowdata.MigrationResponse) []Period {
	if len(resp.Periods) > 0 {
		out := make([]Period, 0, len(resp.Periods))
		for _, tp := range resp.Periods {
			out = append(out, Period{ID: tp.ID, Label: Label(tp)})
		}

		return out
	}

	return derivedFromFlows(resp.Flows)
}

func derivedFromFlows(flows []flowdata.MigrationFlow) []Period {
	seen := make(map[string]struct{}, len(flows))

	var out []Period

	for _, f := range flows {
		if f.PeriodID == "" {
			continue
		}

		if _, ok := seen[f.PeriodID]; ok {
			continue
		}

		seen[f.PeriodID] = struct{}{}

		out = append(out, Period{ID: f.PeriodID, Label: LabelForID(f.PeriodID)})
	}

	return out
}

// Label formats a period's date range. Both dates in the same month yield
// "Jan 2006"; distinct months yield "Jan 2006 – Mar 2006". A period without
// dates falls back to decoding its id.
func Label(tp flowdata.TimePeriod) string {
	if tp.Start.IsZero() && tp.End.IsZero() {
		return LabelForID(tp.ID)
	}

	start, end := tp.Start, tp.End
	if start.IsZero() {
		start = end
	}

	if end.IsZero() {
		end = start
	}

	if start.Year() == end.Year() && start.Month() == end.Month() {
		return start.Format(monthLabel)
	}

	return start.Format(monthLabel) + rangeSeparator + end.Format(monthLabel)
}

// LabelForID decodes a synthetic {mon}{yy} period code ("dec24" → "Dec 2024").
// Ids outside that convention come back uppercased as-is.
func LabelForID(id string) string {
	month, year, ok := decodeSyntheticID(id)
	if !ok {
		return strings.ToUpper(id)
	}

	return month.String()[:3] + " " + strconv.Itoa(year)
}

// YearOf resolves the calendar year of a period id, preferring the catalog's
// start date and falling back to the synthetic code convention.
func YearOf(id string, catalog []flowdata.TimePeriod) (int, bool) {
	for _, tp := range catalog {
		if tp.ID != id {
			continue
		}

		if !tp.Start.IsZero() {
			return tp.Start.Year(), true
		}

		break
	}

	_, year, ok := decodeSyntheticID(id)

	return year, ok
}

// MonthOf resolves the calendar month of a period id in the same way.
func MonthOf(id string, catalog []flowdata.TimePeriod) (time.Month, bool) {
	for _, tp := range catalog {
		if tp.ID != id {
			continue
		}

		if !tp.Start.IsZero() {
			return tp.Start.Month(), true
		}

		break
	}

	month, _, ok := decodeSyntheticID(id)

	return month, ok
}

func decodeSyntheticID(id string) (time.Month, int, bool) {
	code := strings.ToLower(strings.TrimSpace(id))
	if len(code) != syntheticCodeLen {
		return 0, 0, false
	}

	month, ok := monthsByCode[code[:3]]
	if !ok {
		return 0, 0, false
	}

	// Atoi would also accept a signed suffix like "-4".
	for i := 3; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0, 0, false
		}
	}

	yy, err := strconv.Atoi(code[3:])
	if err != nil {
		return 0, 0, false
	}

	return month, syntheticCenturyBase + yy, true
}
