// Command oxyplot produces the dissolved oxygen commissioning statistics
// and charts and the map of the CTD deployments.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vdobler/oxyplot/bathymetry"
	"github.com/vdobler/oxyplot/coastline"
	"github.com/vdobler/oxyplot/commission"
	"github.com/vdobler/oxyplot/config"
	"github.com/vdobler/oxyplot/nautical"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "oxyplot",
	Short: "Dissolved oxygen commissioning analysis and deployment map",
	Long: `oxyplot compares the readings of the dissolved oxygen instruments
taken during commissioning and draws the chart of the CTD deployments.

Settings are read from the environment (OXYPLOT_*) and an optional .env
file; flags take precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, &loaded)
		cfg = loaded

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var commissionCmd = &cobra.Command{
	Use:   "commission",
	Short: "Compute statistics and charts of the instrument comparison",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := commission.New(cfg, logger)
		p.Console = cmd.OutOrStdout()
		_, err := p.Run(cmd.Context())
		return err
	},
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw the chart of the CTD deployments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return drawMap(cfg, logger)
	},
}

// flag values, copied into cfg if set
var (
	dataFlag, outFlag                          string
	welchFlag                                  bool
	deploymentsFlag, bathymetryFlag, coastFlag string
)

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data = dataFlag
	}
	if flags.Changed("out") {
		c.Out = outFlag
	}
	if flags.Changed("welch") {
		c.Welch = welchFlag
	}
	if flags.Changed("deployments") {
		c.Deployments = deploymentsFlag
	}
	if flags.Changed("bathymetry") {
		c.Bathymetry = bathymetryFlag
	}
	if flags.Changed("coastline") {
		c.Coastline = coastFlag
	}
}

func drawMap(cfg config.Config, log *zap.Logger) error {
	deps, err := nautical.ReadDeploymentsFile(cfg.Deployments)
	if err != nil {
		return err
	}
	log.Info("deployments loaded", zap.String("file", cfg.Deployments), zap.Int("n", len(deps)))

	grid, err := bathymetry.Load(cfg.Bathymetry, nautical.DefaultGridBounds)
	if err != nil {
		return err
	}
	cols, rows := grid.Dims()
	log.Debug("bathymetry loaded", zap.String("file", cfg.Bathymetry), zap.Int("lon", cols), zap.Int("lat", rows))

	coast, err := coastline.Load(cfg.Coastline, nautical.DefaultExtent)
	if err != nil {
		return err
	}
	log.Debug("coastline loaded", zap.String("file", cfg.Coastline), zap.Int("rings", len(coast)))

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return err
	}
	file := filepath.Join(cfg.Out, cfg.MapFile)
	if err := nautical.NewChart(deps, grid, coast).Save(file); err != nil {
		return err
	}
	log.Info("saved", zap.String("file", file))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&outFlag, "out", "", "Output directory (or set OXYPLOT_OUT)")

	commissionCmd.Flags().StringVar(&dataFlag, "data", "", "Directory or http(s) URL of the tables (or set OXYPLOT_DATA)")
	commissionCmd.Flags().BoolVar(&welchFlag, "welch", false, "Use Welch's t-test instead of the pooled one")

	mapCmd.Flags().StringVar(&deploymentsFlag, "deployments", "", "CSV of deployment locations")
	mapCmd.Flags().StringVar(&bathymetryFlag, "bathymetry", "", "NetCDF bathymetry grid")
	mapCmd.Flags().StringVar(&coastFlag, "coastline", "", "Coastline shapefile")

	rootCmd.AddCommand(commissionCmd)
	rootCmd.AddCommand(mapCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
