package jobs

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/ginjaninja78/community-order-filter/pkg/utils"
)

// Logger is the subset of the application logger the jobs use.
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Printf(format string, args ...interface{})
}

// ArchiveCleanupConfig configures the archive retention job.
type ArchiveCleanupConfig struct {
	ArchiveDir    string
	RetentionDays int
	Schedule      string
	TimeZone      string
}

// CleanArchive removes archived workbooks older than the retention period
// and returns how many were deleted. A retention of zero keeps everything.
func CleanArchive(cfg ArchiveCleanupConfig, log Logger) (int, error) {
	if cfg.RetentionDays <= 0 {
		return 0, nil
	}
	maxAge := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	removed, err := utils.CleanOldArchives(cfg.ArchiveDir, maxAge)
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		log.Info("Archive cleanup removed %d file(s) older than %d days from %s", removed, cfg.RetentionDays, cfg.ArchiveDir)
	}
	return removed, nil
}

// RunArchiveCleanupScheduler starts the cron job that prunes the output
// archive. The returned scheduler must be stopped on shutdown.
func RunArchiveCleanupScheduler(cfg ArchiveCleanupConfig, log Logger) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 3 * * *" // 3 AM daily
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
		log.Warn("Invalid timezone %s, falling back to UTC: %v", cfg.TimeZone, err)
	}

	c := cron.New(cron.WithLocation(loc), cron.WithLogger(cron.PrintfLogger(log)))

	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Info("Starting archive cleanup at %s", time.Now().In(loc).Format(time.RFC3339))
		if _, err := CleanArchive(cfg, log); err != nil {
			log.Error("Archive cleanup failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("unable to schedule archive cleanup: %w", err)
	}

	c.Start()
	log.Info("Archive cleanup scheduler started with schedule: %s (timezone: %s)", cfg.Schedule, loc)

	return c, nil
}
