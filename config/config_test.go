package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var keys = []string{
	"OXYPLOT_DATA", "OXYPLOT_OUT", "OXYPLOT_DEPLOYMENTS", "OXYPLOT_BATHYMETRY",
	"OXYPLOT_COASTLINE", "OXYPLOT_MAP_FILE", "OXYPLOT_WELCH",
	"OXYPLOT_HTTP_TIMEOUT", "OXYPLOT_LOG_LEVEL",
}

// isolate runs the test in an empty directory with all keys cleared.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Data:        "data",
		Out:         ".",
		Deployments: "data/ctd_deployment_locations.csv",
		Bathymetry:  "GEBCO_2014_2D.nc",
		Coastline:   "highres_aus.shp",
		MapFile:     "e01_dep_locations.svg",
		HTTPTimeout: 30 * time.Second,
		LogLevel:    zapcore.InfoLevel,
	}, cfg)
}

func TestEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OXYPLOT_DATA", "https://example.org/data")
	t.Setenv("OXYPLOT_WELCH", "true")
	t.Setenv("OXYPLOT_HTTP_TIMEOUT", "5s")
	t.Setenv("OXYPLOT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/data", cfg.Data)
	assert.True(t, cfg.Welch)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestDotEnv(t *testing.T) {
	isolate(t)
	// godotenv does not override variables that are already set, so the
	// key must be absent rather than empty.
	os.Unsetenv("OXYPLOT_OUT")
	t.Cleanup(func() { os.Unsetenv("OXYPLOT_OUT") })
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("OXYPLOT_OUT=figures\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "figures", cfg.Out)
}

func TestInvalid(t *testing.T) {
	for key, value := range map[string]string{
		"OXYPLOT_WELCH":        "perhaps",
		"OXYPLOT_HTTP_TIMEOUT": "soon",
		"OXYPLOT_LOG_LEVEL":    "loud",
	} {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, "invalid "+key)
		})
	}
}
