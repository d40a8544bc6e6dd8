// =============================================================================
// Community Order Filter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for generated workbooks:
//   - Output file naming
//   - Writing outputs and keeping archive copies
//   - Retention cleanup of the archive
//
// ARCHIVAL STRATEGY:
//   - `process` writes its workbook into the output directory
//   - When archiving is on, every workbook is also copied to the archive
//   - Archived files older than the retention period are removed by a
//     scheduled job
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for generated workbooks.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// OutputArchiveDir is the directory for archived output files.
	OutputArchiveDir string

	// NameFormat is passed to GenerateOutputFileName.
	NameFormat string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: output_archive/2024/01/15/file.xlsx
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, outputArchiveDir, nameFormat string) *FileManager {
	return &FileManager{
		OutputDir:        outputDir,
		OutputArchiveDir: outputArchiveDir,
		NameFormat:       nameFormat,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.OutputArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteOutput writes data into the output directory under a generated name.
//
// PARAMETERS:
//   - data:  the workbook bytes.
//   - runID: used for the {uuid} placeholder; a fresh UUID when empty.
//
// RETURNS:
//   - The path of the written file.
func (fm *FileManager) WriteOutput(data []byte, runID string) (string, error) {
	name := GenerateOutputFileName(fm.NameFormat, map[string]string{"uuid": runID})
	return fm.WriteOutputAs(data, filepath.Join(fm.OutputDir, name))
}

// WriteOutputAs writes data to path, creating its directory.
func (fm *FileManager) WriteOutputAs(data []byte, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return path, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveOutputFile copies an output file to the archive directory.
//
// RETURNS:
//   - The path to the archived file.
func (fm *FileManager) ArchiveOutputFile(filePath string) (string, error) {
	archivePath := fm.getArchivePath(filepath.Base(filePath))

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := copyFile(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}
	return archivePath, nil
}

// ArchiveBytes stores data in the archive under a generated name. It is
// used by the upload service, which never writes to the output directory.
func (fm *FileManager) ArchiveBytes(data []byte, runID string) (string, error) {
	name := GenerateOutputFileName(fm.NameFormat, map[string]string{"uuid": runID})
	archivePath := fm.getArchivePath(name)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(archivePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	return archivePath, nil
}

// getArchivePath constructs the archive path for a file name.
func (fm *FileManager) getArchivePath(fileName string) string {
	if fm.UseTimestampSubdirs {
		now := time.Now()
		return filepath.Join(
			fm.OutputArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
			fileName,
		)
	}
	return filepath.Join(fm.OutputArchiveDir, fileName)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID (or params["uuid"])
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//   - params: Extra placeholder values; an empty value keeps the default.
//
// RETURNS:
//   - The generated file name, always ending in .xlsx.
//
// EXAMPLE:
//   format: "filtered_{timestamp}_{uuid}.xlsx"
//   output: "filtered_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		if value != "" {
			replacements["{"+key+"}"] = value
		}
	}

	result := format
	if result == "" {
		result = "filtered_{timestamp}_{uuid}.xlsx"
	}
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}

	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CleanOldArchives removes archive files older than maxAge. A missing
// archive directory counts as already clean.
//
// RETURNS:
//   - The number of files removed.
func CleanOldArchives(archiveDir string, maxAge time.Duration) (int, error) {
	if !FileExists(archiveDir) {
		return 0, nil
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(archiveDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}

		return nil
	})

	if err != nil {
		return removed, fmt.Errorf("failed to clean archives: %w", err)
	}

	return removed, nil
}
