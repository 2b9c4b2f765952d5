// Package config loads engine configuration from file, environment, and
// defaults.
package config

import "time"

// CanvasConfig sets the layout surface the projector targets.
type CanvasConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	OriginX float64 `mapstructure:"origin_x"`
	OriginY float64 `mapstructure:"origin_y"`
}

// FilterConfig holds the active location filters.
type FilterConfig struct {
	// Provinces is the ordered allow-list applied to matrix axes. Empty
	// means no filtering.
	Provinces []string `mapstructure:"provinces"`
}

// CacheConfig controls the gazetteer snapshot cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RenderConfig controls HTML chart output.
type RenderConfig struct {
	// Theme selects the chart theme ("dark" or "light").
	Theme string `mapstructure:"theme"`

	// OutputDir is where rendered pages land.
	OutputDir string `mapstructure:"output_dir"`

	// Layout selects the map projection: "geo" for the continuous
	// bounding-box projection, "hex" for the stylized lattice.
	Layout string `mapstructure:"layout"`
}

// Config is the root engine configuration.
type Config struct {
	Canvas CanvasConfig `mapstructure:"canvas"`
	Filter FilterConfig `mapstructure:"filter"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Render RenderConfig `mapstructure:"render"`
}
