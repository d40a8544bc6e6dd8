// =============================================================================
// Community Order Filter - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (orderfilter)
//   ├── processCmd (orderfilter process)
//   ├── serveCmd   (orderfilter serve)
//   └── versionCmd (orderfilter version)
//
// CONFIGURATION:
//   Every command loads .env (if present), then the YAML file named by
//   --config, then FILTER_* environment overrides.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/community-order-filter/internal/config"
	"github.com/ginjaninja78/community-order-filter/internal/converter"
	"github.com/ginjaninja78/community-order-filter/internal/logger"
	"github.com/ginjaninja78/community-order-filter/internal/tabular"
)

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "orderfilter",
	Short: "Community Order Filter - reconcile order exports against the resident directory",
	Long: `Community Order Filter reads an order export and a customer directory,
drops closed orders, fills in flat numbers from the directory, flags orders
whose shipping address disagrees with it, and writes a multi-sheet workbook
for delivery: per-order totals, per-tower sheets, and an updated directory.

Example Usage:
  orderfilter process --orders orders.xlsx --directory cust.xlsx
  orderfilter process --orders orders.csv --directory cust.xlsx --out filtered.xlsx
  orderfilter serve --addr :5000`,

	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads configuration and opens the application logger. The caller
// closes the logger.
func setup() (*config.MainConfig, *logger.Logger, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = logger.LevelDebug
	}

	log, err := logger.Open(cfg.LogFile, level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// converterOptions maps configuration onto the pipeline options.
func converterOptions(cfg *config.MainConfig) converter.Options {
	return converter.Options{
		OrdersSheet:      cfg.OrdersSheet,
		DirectorySheet:   cfg.DirectorySheet,
		ExcludedStatuses: cfg.ExcludedStatuses,
		TowerLabels:      cfg.TowerLabels,
		Reader: tabular.Options{
			CSVEncoding:  cfg.Reader.CSVEncoding,
			CSVDelimiter: cfg.CSVDelimiterRune(),
		},
	}
}
