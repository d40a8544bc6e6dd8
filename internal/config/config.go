// =============================================================================
// Community Order Filter - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. config.yaml (optional; a missing file means "defaults only")
//   3. .env file loaded into the process environment (optional)
//   4. FILTER_* environment variables
//
// ENVIRONMENT OVERRIDES:
//   FILTER_ORDERS_SHEET, FILTER_DIRECTORY_SHEET, FILTER_OUTPUT_DIR,
//   FILTER_CLEANUP_SCHEDULE, FILTER_TIMEZONE, FILTER_ADDR, FILTER_LOG_LEVEL
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// OrdersSheet is the sheet holding the order export.
	// Default: "Inquiries with order meta"
	OrdersSheet string `yaml:"orders_sheet"`

	// DirectorySheet is the sheet holding the customer directory.
	// Default: "Cust_Data"
	DirectorySheet string `yaml:"directory_sheet"`

	// ExcludedStatuses are order statuses dropped before reconciliation.
	// Default: [COMPLETED, REJECTED]
	ExcludedStatuses []string `yaml:"excluded_statuses"`

	// TowerLabels are the single-letter towers that get their own sheet.
	// Default: A-H, J-N, P (I and O are not tower letters)
	TowerLabels []string `yaml:"tower_labels"`

	// Reader tunes input decoding.
	Reader ReaderConfig `yaml:"reader"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where `process` writes its workbook when --out is not set.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputArchiveDir holds archived copies of generated workbooks.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// OutputNameFormat names generated files.
	// Placeholders:
	//   {uuid}      - the run ID
	//   {timestamp} - current time (YYYYMMDD_HHMMSS)
	// Default: "filtered_{timestamp}_{uuid}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// ArchiveOutputs keeps a copy of every served workbook.
	// Default: false
	ArchiveOutputs bool `yaml:"archive_outputs"`

	// ArchiveRetentionDays is how long archived workbooks are kept.
	// Default: 14
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// CleanupSchedule is the cron spec for archive cleanup.
	// Default: "0 3 * * *"
	CleanupSchedule string `yaml:"cleanup_schedule"`

	// Timezone the cleanup schedule runs in.
	// Default: "Asia/Kolkata"
	Timezone string `yaml:"timezone"`

	// =========================================================================
	// SERVER SETTINGS
	// =========================================================================

	Server ServerConfig `yaml:"server"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file; empty logs to stderr.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// ServerConfig configures the HTTP upload service.
type ServerConfig struct {
	// Addr is the listen address. Default: ":5000"
	Addr string `yaml:"addr"`

	// MaxUploadMB caps the multipart request body. Default: 32
	MaxUploadMB int64 `yaml:"max_upload_mb"`

	// StaticDir, when set, is served at / with index.html as fallback.
	StaticDir string `yaml:"static_dir"`

	// ReadTimeout and WriteTimeout bound each request. Defaults: 30s, 60s
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// ReaderConfig configures input decoding.
type ReaderConfig struct {
	// CSVEncoding: auto, utf-8, utf-16le, utf-16be, windows-1252, iso-8859-1.
	// Default: "auto"
	CSVEncoding string `yaml:"csv_encoding"`

	// CSVDelimiter is a single character. Default: ","
	CSVDelimiter string `yaml:"csv_delimiter"`
}

// Duration is a time.Duration written as "30s" in YAML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML accepts Go duration strings.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// LoadEnv loads a .env file into the environment. A missing file is ignored.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadMainConfig reads the main configuration file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. If the file does
//     not exist, defaults are used.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyMainConfigDefaults(&config)
	applyEnvOverrides(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OrdersSheet == "" {
		config.OrdersSheet = "Inquiries with order meta"
	}
	if config.DirectorySheet == "" {
		config.DirectorySheet = "Cust_Data"
	}
	if len(config.ExcludedStatuses) == 0 {
		config.ExcludedStatuses = []string{"COMPLETED", "REJECTED"}
	}
	if len(config.TowerLabels) == 0 {
		config.TowerLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P"}
	}
	if config.Reader.CSVEncoding == "" {
		config.Reader.CSVEncoding = "auto"
	}
	if config.Reader.CSVDelimiter == "" {
		config.Reader.CSVDelimiter = ","
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "filtered_{timestamp}_{uuid}.xlsx"
	}
	if config.ArchiveRetentionDays == 0 {
		config.ArchiveRetentionDays = 14
	}
	if config.CleanupSchedule == "" {
		config.CleanupSchedule = "0 3 * * *"
	}
	if config.Timezone == "" {
		config.Timezone = "Asia/Kolkata"
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":5000"
	}
	if config.Server.MaxUploadMB == 0 {
		config.Server.MaxUploadMB = 32
	}
	if config.Server.ReadTimeout.Duration == 0 {
		config.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if config.Server.WriteTimeout.Duration == 0 {
		config.Server.WriteTimeout.Duration = 60 * time.Second
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// applyEnvOverrides copies FILTER_* variables over file values.
func applyEnvOverrides(config *MainConfig) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"FILTER_ORDERS_SHEET", &config.OrdersSheet},
		{"FILTER_DIRECTORY_SHEET", &config.DirectorySheet},
		{"FILTER_OUTPUT_DIR", &config.OutputDir},
		{"FILTER_CLEANUP_SCHEDULE", &config.CleanupSchedule},
		{"FILTER_TIMEZONE", &config.Timezone},
		{"FILTER_ADDR", &config.Server.Addr},
		{"FILTER_LOG_LEVEL", &config.LogLevel},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(v) != "" {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	for i, l := range config.TowerLabels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if len(l) != 1 || l[0] < 'A' || l[0] > 'Z' {
			return fmt.Errorf("tower label %q must be a single letter", config.TowerLabels[i])
		}
		config.TowerLabels[i] = l
	}

	if len([]rune(config.Reader.CSVDelimiter)) != 1 {
		return fmt.Errorf("csv_delimiter %q must be a single character", config.Reader.CSVDelimiter)
	}

	if config.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative")
	}

	if _, err := time.LoadLocation(config.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", config.Timezone, err)
	}

	if config.Server.MaxUploadMB < 0 {
		return fmt.Errorf("server.max_upload_mb must not be negative")
	}

	return nil
}

// CSVDelimiterRune returns the configured delimiter as a rune.
func (c *MainConfig) CSVDelimiterRune() rune {
	for _, r := range c.Reader.CSVDelimiter {
		return r
	}
	return ','
}

