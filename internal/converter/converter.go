// =============================================================================
// Community Order Filter - Converter Module
// =============================================================================
//
// This module orchestrates one filtering run, from the two uploaded
// workbooks to the output workbook.
//
// CONVERSION PIPELINE:
//   1. Open the order workbook and find the order sheet
//   2. Open the directory workbook and find the directory sheet
//   3. Check headers and rows (warnings only)
//   4. Build the customer directory
//   5. Reconcile: filter, validate, bucket, aggregate, sort
//   6. Transform each bucket into report rows
//   7. Partition rows by tower and append new directory entries
//   8. Write the output workbook
//
// ERRORS:
//   A missing sheet or unreadable input stops the run and no output is
//   produced. Everything else is permissive.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/community-order-filter/internal/directory"
	"github.com/ginjaninja78/community-order-filter/internal/reconcile"
	"github.com/ginjaninja78/community-order-filter/internal/report"
	"github.com/ginjaninja78/community-order-filter/internal/tabular"
	"github.com/ginjaninja78/community-order-filter/internal/types"
	"github.com/ginjaninja78/community-order-filter/internal/validation"
)

// Input source labels, used in MissingSheetError messages.
const (
	SourceOrders    = "uploaded file"
	SourceDirectory = "customer data file"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in logs and output file names.
	RunID string

	// Output is the generated workbook. Nil if the run failed.
	Output []byte

	// Sheets lists the output sheets in order.
	Sheets []string

	// Success indicates whether the run produced output.
	Success bool

	// Error contains the error if the run failed.
	Error error

	// Findings holds the non-fatal input check results.
	Findings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of non-blank order rows read.
	RowsRead int

	// RowsExcluded were dropped for their status.
	RowsExcluded int

	// MainLines, NewNumberLines and FlaggedLines are bucket sizes.
	MainLines      int
	NewNumberLines int
	FlaggedLines   int

	// MainOrders, NewNumberOrders and FlaggedOrders count distinct orders.
	MainOrders      int
	NewNumberOrders int
	FlaggedOrders   int

	// TowerSheets is the number of tower sheets written.
	TowerSheets int

	// DirectoryEntries is the size of the input directory;
	// NewDirectoryEntries were appended by this run.
	DirectoryEntries    int
	NewDirectoryEntries int

	// DuplicateMobiles counts repeated directory mobile numbers.
	DuplicateMobiles int

	// Warnings is the number of input check findings.
	Warnings int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options configures a Converter.
type Options struct {
	// OrdersSheet and DirectorySheet are the required sheet names.
	OrdersSheet    string
	DirectorySheet string

	// ExcludedStatuses drop lines before reconciliation.
	ExcludedStatuses []string

	// TowerLabels get one sheet each, in this order.
	TowerLabels []string

	// Reader tunes input decoding.
	Reader tabular.Options
}

// DefaultOptions returns the standard sheet names and labels.
func DefaultOptions() Options {
	return Options{
		OrdersSheet:      "Inquiries with order meta",
		DirectorySheet:   "Cust_Data",
		ExcludedStatuses: reconcile.DefaultExcludedStatuses,
		TowerLabels:      reconcile.DefaultTowerLabels,
		Reader:           tabular.DefaultOptions(),
	}
}

// Converter runs the filtering pipeline. It keeps no state between runs and
// may be shared.
type Converter struct {
	opts   Options
	engine *reconcile.Engine
	logger Logger
}

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter. A nil logger discards all messages.
func New(opts Options, logger Logger) *Converter {
	defaults := DefaultOptions()
	if opts.OrdersSheet == "" {
		opts.OrdersSheet = defaults.OrdersSheet
	}
	if opts.DirectorySheet == "" {
		opts.DirectorySheet = defaults.DirectorySheet
	}
	if len(opts.TowerLabels) == 0 {
		opts.TowerLabels = defaults.TowerLabels
	}
	if opts.Reader.CSVEncoding == "" {
		opts.Reader.CSVEncoding = defaults.Reader.CSVEncoding
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Converter{
		opts:   opts,
		engine: reconcile.NewEngine(reconcile.Options{ExcludedStatuses: opts.ExcludedStatuses}),
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline over the raw bytes of the two inputs.
//
// PARAMETERS:
//   - orders:    the order export workbook.
//   - directory: the customer directory workbook.
//
// RETURNS:
//   - A Result. On failure Success is false, Error is set and Output is nil.
func (c *Converter) Run(orders, dir []byte) Result {
	startTime := time.Now()
	result := Result{RunID: uuid.NewString()}

	c.logger.Info("[%s] Starting filter run", result.RunID)

	// =========================================================================
	// STEP 1-2: LOAD SHEETS
	// =========================================================================

	orderTable, err := c.loadSheet(SourceOrders, orders, c.opts.OrdersSheet)
	if err != nil {
		return c.fail(result, err)
	}
	dirTable, err := c.loadSheet(SourceDirectory, dir, c.opts.DirectorySheet)
	if err != nil {
		return c.fail(result, err)
	}

	// =========================================================================
	// STEP 3: INPUT CHECKS
	// =========================================================================

	lines := ReadOrderLines(orderTable)
	result.Stats.RowsRead = len(lines)

	checks := validation.CheckHeaders(c.opts.OrdersSheet, orderTable, types.OrderColumns)
	checks.Merge(validation.CheckHeaders(c.opts.DirectorySheet, dirTable,
		[]string{types.ColDirMobile, types.ColDirFlat}))
	checks.Merge(validation.CheckOrderLines(c.opts.OrdersSheet, lines))

	result.Findings = checks.Errors
	result.Stats.Warnings = checks.WarningCount
	for _, f := range checks.Errors {
		c.logger.Warn("[%s] %s", result.RunID, f.Error())
	}

	c.logger.Debug("[%s] Read %d order lines from '%s'", result.RunID, len(lines), orderTable.Name)

	// =========================================================================
	// STEP 4: DIRECTORY
	// =========================================================================

	entries := directory.ReadEntries(dirTable)
	custDir := directory.New(entries)
	result.Stats.DirectoryEntries = custDir.Len()
	result.Stats.DuplicateMobiles = len(custDir.Duplicates())
	for _, m := range custDir.Duplicates() {
		c.logger.Debug("[%s] Duplicate directory mobile %s; last row wins", result.RunID, m)
	}

	// =========================================================================
	// STEP 5: RECONCILE
	// =========================================================================

	rec := c.engine.Reconcile(lines, custDir)
	result.Stats.RowsExcluded = rec.Excluded
	result.Stats.MainLines = len(rec.Main)
	result.Stats.NewNumberLines = len(rec.NewNumber)
	result.Stats.FlaggedLines = len(rec.Flagged)
	result.Stats.MainOrders = reconcile.GroupLines(rec.Main).Len()
	result.Stats.NewNumberOrders = reconcile.GroupLines(rec.NewNumber).Len()
	result.Stats.FlaggedOrders = rec.FlaggedTotals.Len()

	// =========================================================================
	// STEP 6-7: TRANSFORM, PARTITION, UPDATE DIRECTORY
	// =========================================================================

	doc := c.buildDocument(rec, custDir)
	result.Stats.TowerSheets = len(doc.Towers)
	result.Stats.NewDirectoryEntries = len(doc.Directory) - len(entries)

	// =========================================================================
	// STEP 8: WRITE OUTPUT
	// =========================================================================

	output, err := report.Write(doc)
	if err != nil {
		return c.fail(result, fmt.Errorf("failed to write report: %w", err))
	}

	result.Output = output
	result.Sheets = doc.SheetNames()
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("[%s] Run complete: %d main, %d new-number, %d flagged lines; %d new directory entries in %s",
		result.RunID,
		result.Stats.MainLines,
		result.Stats.NewNumberLines,
		result.Stats.FlaggedLines,
		result.Stats.NewDirectoryEntries,
		result.Stats.ProcessingTime,
	)

	return result
}

// buildDocument runs everything after reconciliation and returns the
// report contents without serialising them.
func (c *Converter) buildDocument(rec *reconcile.Result, custDir *directory.Directory) *report.Document {
	valid := NewTransformer(rec.Totals)
	flagged := NewTransformer(rec.FlaggedTotals)

	mainRows := valid.TransformAll(rec.Main)
	newRows := valid.TransformAll(rec.NewNumber)

	allRows := make([]types.OutputRow, 0, len(mainRows)+len(newRows))
	allRows = append(allRows, mainRows...)
	allRows = append(allRows, newRows...)

	updated, _ := custDir.Update(allRows)

	return &report.Document{
		Flagged:   flagged.TransformAll(rec.Flagged),
		Main:      mainRows,
		Extended:  valid.Extended().TransformAll(rec.Valid()),
		NewNumber: newRows,
		Towers:    reconcile.PartitionTowers(allRows, c.opts.TowerLabels),
		Directory: updated,
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadSheet opens one input and returns the requested sheet.
func (c *Converter) loadSheet(source string, data []byte, sheet string) (*tabular.Table, error) {
	wb, err := tabular.Open(source, data, c.opts.Reader)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	c.logger.Debug("Opened %s as %s with sheets %v", source, wb.Format, wb.SheetNames())

	return wb.Sheet(sheet)
}

func (c *Converter) fail(result Result, err error) Result {
	result.Error = err
	c.logger.Error("[%s] Run failed: %v", result.RunID, err)
	return result
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
