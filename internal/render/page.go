// Package render turns the engine's derived structures into static
// go-echarts HTML pages: the flow-map graph, the chord-style province
// matrix, and the sankey view. These pages are operator tooling for offline
// review; the production dashboard consumes the typed structures directly.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Chart dimensions shared by every page.
const (
	chartWidth  = "1200px"
	chartHeight = "800px"
)

// Theme names accepted by Options.Theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Output file permissions.
const pageFilePerm = 0o640

// Options configures page rendering.
type Options struct {
	Theme string
	Title string
}

// chartTheme maps an Options theme onto an echarts theme.
func chartTheme(theme string) string {
	if theme == ThemeLight {
		return types.ThemeWesteros
	}

	return types.ThemeChalk
}

// initOpts builds the shared chart initialization options.
func initOpts(o Options) opts.Initialization {
	return opts.Initialization{
		Theme:  chartTheme(o.Theme),
		Width:  chartWidth,
		Height: chartHeight,
	}
}

// WritePage renders charts into one HTML page at path.
func WritePage(path string, charters ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(charters...)

	f, createErr := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, pageFilePerm)
	if createErr != nil {
		return fmt.Errorf("create page %s: %w", path, createErr)
	}

	renderErr := page.Render(f)

	closeErr := f.Close()

	if renderErr != nil {
		return fmt.Errorf("render page %s: %w", path, renderErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close page %s: %w", path, closeErr)
	}

	return nil
}

// RenderTo renders charts into one HTML page on w.
func RenderTo(w io.Writer, charters ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(charters...)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}
