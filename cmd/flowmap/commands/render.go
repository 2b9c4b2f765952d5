package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/config"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/gazetteer"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/observability"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/render"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/internal/snapshot"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowdata"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/flowgraph"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/geo"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/location"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/matrix"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/period"
	"github.com/ADB-Data-Division/DataBlox-frontend-sub001/pkg/sankey"
)

const (
	renderCmdUse        = "render <file.json|snapshot-name>"
	renderCmdShort      = "Build flow map, chord and sankey pages from a payload"
	renderArgCount      = 1
	renderDirPerm       = 0o750
	renderOutputFlag    = "output"
	renderOutputShort   = "o"
	renderOutputUsage   = "output directory for HTML files (overrides config)"
	renderConfigFlag    = "config"
	renderConfigUsage   = "path to the engine config file"
	renderPeriodFlag    = "period"
	renderPeriodUsage   = "render the flow map for this period id only"
	snapshotDirFlag     = "snapshot-dir"
	snapshotDirUsage    = "directory of the compressed snapshot store"
	fromSnapshotFlag    = "from-snapshot"
	fromSnapshotUsage   = "treat the argument as a stored snapshot name"
	saveSnapshotFlag    = "save-snapshot"
	saveSnapshotUsage   = "store the decoded payload under this snapshot name"
	defaultSnapshotDir  = "snapshots"
	flowMapPagePattern  = "flowmap_%s.html"
	chordPageName       = "chord.html"
	sankeyPageName      = "sankey.html"
	flowMapTitlePattern = "Migration Flows %s"
)

// ErrNoSnapshotForSave is returned when --save-snapshot is combined with
// --from-snapshot, which would copy a snapshot onto itself.
var ErrNoSnapshotForSave = errors.New("cannot save a snapshot while loading from one")

type renderFlags struct {
	outputDir    string
	configPath   string
	periodID     string
	snapshotDir  string
	fromSnapshot bool
	saveSnapshot string
}

// NewRenderCommand creates the render subcommand.
func NewRenderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   renderCmdUse,
		Short: renderCmdShort,
		Args:  cobra.ExactArgs(renderArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputDir, renderOutputFlag, renderOutputShort, "", renderOutputUsage)
	cmd.Flags().StringVar(&flags.configPath, renderConfigFlag, "", renderConfigUsage)
	cmd.Flags().StringVar(&flags.periodID, renderPeriodFlag, "", renderPeriodUsage)
	cmd.Flags().StringVar(&flags.snapshotDir, snapshotDirFlag, defaultSnapshotDir, snapshotDirUsage)
	cmd.Flags().BoolVar(&flags.fromSnapshot, fromSnapshotFlag, false, fromSnapshotUsage)
	cmd.Flags().StringVar(&flags.saveSnapshot, saveSnapshotFlag, "", saveSnapshotUsage)

	return cmd
}

func runRender(input string, flags renderFlags) error {
	if flags.saveSnapshot != "" && flags.fromSnapshot {
		return ErrNoSnapshotForSave
	}

	cfg, cfgErr := config.LoadConfig(flags.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = cfg.Render.OutputDir
	}

	store := snapshot.NewStore(flags.snapshotDir, snapshot.LZ4Codec{})

	resp, loadErr := loadPayload(input, flags, store)
	if loadErr != nil {
		return loadErr
	}

	if flags.saveSnapshot != "" {
		saveErr := store.Save(flags.saveSnapshot, resp)
		if saveErr != nil {
			return saveErr
		}

		slog.Info("snapshot saved", "name", flags.saveSnapshot, "dir", flags.snapshotDir)
	}

	mkErr := os.MkdirAll(outputDir, renderDirPerm)
	if mkErr != nil {
		return fmt.Errorf("create output dir: %w", mkErr)
	}

	return renderPages(resp, cfg, outputDir, flags.periodID)
}

func loadPayload(input string, flags renderFlags, store *snapshot.Store) (*flowdata.MigrationResponse, error) {
	if flags.fromSnapshot {
		return store.Load(input)
	}

	return loadResponse(input)
}

func renderPages(resp *flowdata.MigrationResponse, cfg *config.Config, outputDir, periodID string) error {
	catalog, catErr := gazetteer.Default()
	if catErr != nil {
		return catErr
	}

	diag := observability.NewDiagnostics(slog.Default(), nil)

	canvas := geo.Canvas{
		Width:   cfg.Canvas.Width,
		Height:  cfg.Canvas.Height,
		OriginX: cfg.Canvas.OriginX,
		OriginY: cfg.Canvas.OriginY,
	}

	units := resp.Metadata.Units
	if units == "" {
		units = flowgraph.DefaultUnits
	}

	periods := selectPeriods(resp, periodID)

	for _, p := range periods {
		graph := flowgraph.BuildGraph(resp.Flows, p.ID, resp.Data, flowgraph.Options{
			Canvas:      canvas,
			Directory:   catalog,
			Diagnostics: diag,
			Units:       units,
		})

		if cfg.Render.Layout == config.LayoutHex {
			hexErr := applyHexLayout(graph, canvas)
			if hexErr != nil {
				return hexErr
			}
		}

		chart := render.FlowMapChart(graph, render.Options{
			Theme: cfg.Render.Theme,
			Title: fmt.Sprintf(flowMapTitlePattern, p.Label),
		})

		pagePath := filepath.Join(outputDir, fmt.Sprintf(flowMapPagePattern, p.ID))

		writeErr := render.WritePage(pagePath, chart)
		if writeErr != nil {
			return writeErr
		}

		slog.Info("page rendered", "path", pagePath, "period", p.ID)
	}

	chordErr := renderChordPage(resp, cfg, outputDir)
	if chordErr != nil {
		return chordErr
	}

	return renderSankeyPage(resp, cfg, outputDir)
}

// selectPeriods narrows the catalog to the requested period, or returns all
// periods when none was requested.
func selectPeriods(resp *flowdata.MigrationResponse, periodID string) []period.Period {
	periods := period.Periods(resp)
	if periodID == "" {
		return periods
	}

	for _, p := range periods {
		if p.ID == periodID {
			return []period.Period{p}
		}
	}

	slog.Warn("requested period not in payload", "period", periodID)

	return nil
}

func renderChordPage(resp *flowdata.MigrationResponse, cfg *config.Config, outputDir string) error {
	records := make([]matrix.Record, 0, len(resp.Flows))

	for _, f := range resp.Flows {
		records = append(records, matrix.Record{
			SourceKey:      f.Origin.Name,
			DestinationKey: f.Destination.Name,
			Count:          f.Count,
		})
	}

	m := matrix.BuildMatrix(records, cfg.Filter.Provinces)

	chart := render.ChordChart(m, render.Options{
		Theme: cfg.Render.Theme,
		Title: "Province Exchanges",
	})

	return render.WritePage(filepath.Join(outputDir, chordPageName), chart)
}

func renderSankeyPage(resp *flowdata.MigrationResponse, cfg *config.Config, outputDir string) error {
	graph := sankey.BuildGraph(resp.Flows, resp.Periods)

	chart := render.SankeyChart(graph, render.Options{
		Theme: cfg.Render.Theme,
		Title: "Migration by Year",
	})

	return render.WritePage(filepath.Join(outputDir, sankeyPageName), chart)
}

// applyHexLayout snaps node positions onto the stylized province lattice.
// Nodes without a lattice cell keep their projected positions.
func applyHexLayout(graph *flowgraph.Graph, canvas geo.Canvas) error {
	lattice, err := geo.DefaultLattice()
	if err != nil {
		return err
	}

	for i := range graph.Nodes {
		cell, cellErr := lattice.Cell(location.Normalize(graph.Nodes[i].Label))
		if cellErr != nil {
			continue
		}

		pt := lattice.ProjectCell(cell, canvas)
		graph.Nodes[i].X = pt.X
		graph.Nodes[i].Y = pt.Y
	}

	return nil
}
