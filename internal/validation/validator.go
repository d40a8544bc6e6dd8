// =============================================================================
// Community Order Filter - Input Checks
// =============================================================================
//
// This module inspects the two input sheets before reconciliation and reports
// anything that will silently degrade the output:
//   - expected columns missing from a header row
//   - order lines with no order number or mobile number
//   - numeric cells that do not parse and will be read as 0
//
// SEVERITY:
//   Nothing here stops a run. The reader is permissive by contract: missing
//   columns read as empty and unparseable numbers as zero. Findings are
//   returned as warnings so the caller can log them.
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ValidationError represents a single finding.
type ValidationError struct {
	// Severity is SeverityWarning or SeverityError.
	Severity string

	// Sheet is the input sheet the finding belongs to.
	Sheet string

	// Field is the column header involved.
	Field string

	// Value is the offending cell text, if any.
	Value string

	// Rule names the check that fired.
	Rule string

	// Message is a human-readable description.
	Message string

	// RowNumber is the 1-based sheet row; 0 for header findings.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("[%s] Sheet '%s', Field '%s': %s",
			strings.ToUpper(e.Severity), e.Sheet, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] Sheet '%s', Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity), e.Sheet, e.RowNumber, e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult collects the findings of one check pass.
type ValidationResult struct {
	// IsValid is true if there are no error-severity findings.
	IsValid bool

	// Errors contains all findings (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of error-severity findings.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int
}

func newResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// Merge appends the findings of other to r.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for _, e := range other.Errors {
		r.add(e)
	}
}

// =============================================================================
// HEADER CHECKS
// =============================================================================

// HeaderSource is the part of a sheet the header checks need.
type HeaderSource interface {
	MissingColumns(want []string) []string
}

// CheckHeaders warns about every column in required that sheet lacks.
func CheckHeaders(sheetName string, sheet HeaderSource, required []string) *ValidationResult {
	res := newResult()
	for _, h := range sheet.MissingColumns(required) {
		res.add(&ValidationError{
			Severity: SeverityWarning,
			Sheet:    sheetName,
			Field:    h,
			Rule:     "missing_column",
			Message:  "column not found; values will be read as empty",
		})
	}
	return res
}

// =============================================================================
// ROW CHECKS
// =============================================================================

// CheckOrderLines warns about lines that will not reconcile cleanly.
func CheckOrderLines(sheetName string, lines []types.OrderLine) *ValidationResult {
	res := newResult()
	for _, l := range lines {
		if strings.TrimSpace(l.OrderNumber) == "" {
			res.add(rowWarning(sheetName, l.RowNumber, types.ColOrderNumber, l.OrderNumber,
				"required", "order number is blank; line forms its own unnamed order"))
		}
		if strings.TrimSpace(l.Mobile) == "" {
			res.add(rowWarning(sheetName, l.RowNumber, types.ColMobile, l.Mobile,
				"required", "mobile number is blank; line is treated as a new number"))
		}
		for _, f := range []struct{ name, value string }{
			{types.ColItemCount, l.ItemCount},
			{types.ColPrice, l.Price},
			{types.ColDiscountedPrice, l.DiscountedPrice},
		} {
			if msg := validateNumeric(f.value); msg != "" {
				res.add(rowWarning(sheetName, l.RowNumber, f.name, f.value, "numeric", msg))
			}
		}
	}
	return res
}

func rowWarning(sheet string, row int, field, value, rule, msg string) *ValidationError {
	return &ValidationError{
		Severity:  SeverityWarning,
		Sheet:     sheet,
		Field:     field,
		Value:     value,
		Rule:      rule,
		Message:   msg,
		RowNumber: row,
	}
}

// validateNumeric returns a message when a non-blank value has no numeric
// prefix at all.
func validateNumeric(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if types.IsNumeric(v) {
		return ""
	}
	return "not a number; read as 0"
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatErrors formats findings for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes findings to filePath, replacing any existing file.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatErrors(errors)), 0644); err != nil {
		return fmt.Errorf("failed to write validation log: %w", err)
	}
	return nil
}
