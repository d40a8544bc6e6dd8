// =============================================================================
// Community Order Filter - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   orderfilter serve [--addr :5000]
//
// Runs the upload service until SIGINT/SIGTERM. When archive_outputs is set
// every served workbook is copied to output_archive_dir and a cron job
// prunes copies older than archive_retention_days.
//
// =============================================================================

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/community-order-filter/internal/converter"
	"github.com/ginjaninja78/community-order-filter/internal/jobs"
	"github.com/ginjaninja78/community-order-filter/internal/server"
	"github.com/ginjaninja78/community-order-filter/pkg/utils"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Addr:           cfg.Server.Addr,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		StaticDir:      cfg.Server.StaticDir,
		ReadTimeout:    cfg.Server.ReadTimeout.Duration,
		WriteTimeout:   cfg.Server.WriteTimeout.Duration,
	}

	if cfg.ArchiveOutputs {
		fm := utils.NewFileManager(cfg.OutputDir, cfg.OutputArchiveDir, cfg.OutputNameFormat)
		fm.UseTimestampSubdirs = true
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		opts.Archive = fm

		janitor, err := jobs.RunArchiveCleanupScheduler(jobs.ArchiveCleanupConfig{
			ArchiveDir:    cfg.OutputArchiveDir,
			RetentionDays: cfg.ArchiveRetentionDays,
			Schedule:      cfg.CleanupSchedule,
			TimeZone:      cfg.Timezone,
		}, log)
		if err != nil {
			return err
		}
		defer func() { <-janitor.Stop().Done() }()
	}

	srv := server.New(opts, converter.New(converterOptions(cfg), log), log)
	return srv.ListenAndServe(ctx)
}
