package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".flowmap"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for engine settings.
const envPrefix = "FLOWMAP"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Recognized map layouts.
const (
	LayoutGeo = "geo"
	LayoutHex = "hex"
)

// Layout defaults sized for the dashboard's map pane.
const (
	defaultCanvasWidth  = 800.0
	defaultCanvasHeight = 1100.0
	defaultCacheTTL     = 15 * time.Minute
	defaultTheme        = "dark"
	defaultLayout       = LayoutGeo
	defaultOutputDir    = "flowmap-report"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&cfg)
	if validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("canvas.width", defaultCanvasWidth)
	v.SetDefault("canvas.height", defaultCanvasHeight)
	v.SetDefault("canvas.origin_x", 0.0)
	v.SetDefault("canvas.origin_y", 0.0)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("render.theme", defaultTheme)
	v.SetDefault("render.layout", defaultLayout)
	v.SetDefault("render.output_dir", defaultOutputDir)
}

func validate(cfg *Config) error {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %gx%g", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	switch cfg.Render.Layout {
	case LayoutGeo, LayoutHex:
	default:
		return fmt.Errorf("invalid render layout %q (want geo or hex)", cfg.Render.Layout)
	}

	return nil
}
