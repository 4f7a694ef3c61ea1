// Package config loads the settings of the oxyplot command from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDataDir     = "data"
	defaultOutDir      = "."
	defaultDeployments = "data/ctd_deployment_locations.csv"
	defaultBathymetry  = "GEBCO_2014_2D.nc"
	defaultCoastline   = "highres_aus.shp"
	defaultMapFile     = "e01_dep_locations.svg"
	defaultHTTPTimeout = 30 * time.Second
)

// Config holds the locations of inputs and outputs of both pipelines.
type Config struct {
	// Data is a directory or an http(s) base URL holding the
	// commissioning tables.
	Data string
	Out  string

	Deployments string
	Bathymetry  string
	Coastline   string
	MapFile     string

	Welch       bool
	HTTPTimeout time.Duration
	LogLevel    zapcore.Level
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		Data:        env("OXYPLOT_DATA", defaultDataDir),
		Out:         env("OXYPLOT_OUT", defaultOutDir),
		Deployments: env("OXYPLOT_DEPLOYMENTS", defaultDeployments),
		Bathymetry:  env("OXYPLOT_BATHYMETRY", defaultBathymetry),
		Coastline:   env("OXYPLOT_COASTLINE", defaultCoastline),
		MapFile:     env("OXYPLOT_MAP_FILE", defaultMapFile),
		HTTPTimeout: defaultHTTPTimeout,
		LogLevel:    zapcore.InfoLevel,
	}

	if v := strings.TrimSpace(os.Getenv("OXYPLOT_WELCH")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid OXYPLOT_WELCH: %w", err)
		}
		cfg.Welch = b
	}

	if v := strings.TrimSpace(os.Getenv("OXYPLOT_HTTP_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid OXYPLOT_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("OXYPLOT_LOG_LEVEL")); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid OXYPLOT_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
