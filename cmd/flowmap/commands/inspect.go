package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/period"
)

const (
	inspectCmdUse      = "inspect <file.json|->"
	inspectCmdShort    = "Summarize the periods, locations and flows of a payload"
	inspectArgCount    = 1
	inspectPeriodFlag  = "period"
	inspectPeriodUsage = "restrict the flow summary to one period id"
	inspectTopFlag     = "top"
	inspectTopUsage    = "number of largest flows to list"
	inspectTopDefault  = 10
	countDigits        = 0
)

// NewInspectCommand creates the inspect subcommand.
func NewInspectCommand() *cobra.Command {
	var periodID string

	var topN int

	cmd := &cobra.Command{
		Use:   inspectCmdUse,
		Short: inspectCmdShort,
		Args:  cobra.ExactArgs(inspectArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0], periodID, topN)
		},
	}

	cmd.Flags().StringVar(&periodID, inspectPeriodFlag, "", inspectPeriodUsage)
	cmd.Flags().IntVar(&topN, inspectTopFlag, inspectTopDefault, inspectTopUsage)

	return cmd
}

func runInspect(inputPath, periodID string, topN int) error {
	resp, err := loadResponse(inputPath)
	if err != nil {
		return err
	}

	printOverview(resp)
	printPeriods(resp)
	printTopFlows(resp, periodID, topN)

	return nil
}

func loadResponse(inputPath string) (*flowdata.MigrationResponse, error) {
	if inputPath == stdinPath {
		return flowdata.DecodeResponse(os.Stdin)
	}

	f, openErr := os.Open(inputPath)
	if openErr != nil {
		return nil, fmt.Errorf("open input: %w", openErr)
	}

	defer f.Close()

	return flowdata.DecodeResponse(f)
}

func printOverview(resp *flowdata.MigrationResponse) {
	kind := "flow-only"
	if resp.Kind() == flowdata.KindLocationSeries {
		kind = "location-series"
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Field", "Value"})
	tbl.AppendRow(table.Row{"Dataset", resp.Metadata.Dataset})
	tbl.AppendRow(table.Row{"Shape", kind})
	tbl.AppendRow(table.Row{"Periods", len(resp.Periods)})
	tbl.AppendRow(table.Row{"Locations", len(resp.Data)})
	tbl.AppendRow(table.Row{"Flow records", len(resp.Flows)})
	tbl.AppendRow(table.Row{"Total movement", humanize.CommafWithDigits(resp.TotalFlowCount(), countDigits)})

	fmt.Fprintln(os.Stdout, tbl.Render())
}

func printPeriods(resp *flowdata.MigrationResponse) {
	periods := period.Periods(resp)
	if len(periods) == 0 {
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Period", "Label"})

	for _, p := range periods {
		tbl.AppendRow(table.Row{p.ID, p.Label})
	}

	fmt.Fprintln(os.Stdout, tbl.Render())
}

func printTopFlows(resp *flowdata.MigrationResponse, periodID string, topN int) {
	flows := make([]flowdata.MigrationFlow, 0, len(resp.Flows))

	for _, f := range resp.Flows {
		if periodID != "" && f.PeriodID != periodID {
			continue
		}

		flows = append(flows, f)
	}

	if len(flows) == 0 || topN <= 0 {
		return
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Count > flows[j].Count
	})

	if len(flows) > topN {
		flows = flows[:topN]
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Origin", "Destination", "Period", "Count"})

	for _, f := range flows {
		tbl.AppendRow(table.Row{
			f.Origin.Name,
			f.Destination.Name,
			f.PeriodID,
			humanize.CommafWithDigits(f.Count, countDigits),
		})
	}

	tbl.AppendFooter(table.Row{"", "", "Total", humanize.CommafWithDigits(totalCount(flows), countDigits)})

	fmt.Fprintln(os.Stdout, tbl.Render())
}

func totalCount(flows []flowdata.MigrationFlow) float64 {
	var total float64

	for _, f := range flows {
		total += f.Count
	}

	return total
}
