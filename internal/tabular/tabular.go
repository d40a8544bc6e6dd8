// =============================================================================
// Community Order Filter - Tabular Reader
// =============================================================================
//
// This module loads a named sheet from an uploaded workbook into a Table: a
// header row plus ordered data rows, addressed by column position.
//
// SUPPORTED INPUTS (detected from the leading bytes, never from a file name):
//   - .xlsx  Office Open XML workbooks (excelize)
//   - .xls   legacy BIFF workbooks (extrame/xls)
//   - .csv   delimited text; treated as a workbook with a single sheet that
//            answers to any sheet name
//
// HEADER INDEX:
//   Each Table builds a header -> column index once, when it is loaded.
//   Callers resolve the columns they need up front and then read cells by
//   position. Header names are compared after NFKC normalisation and
//   whitespace collapsing, so "Flat Number" still finds "Flat Number".
//
// =============================================================================

package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrUnsupportedFormat is returned when the payload is not a workbook or text.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// MissingSheetError reports that a required sheet is absent from an input.
// It is always fatal for a run.
type MissingSheetError struct {
	// Sheet is the name that was looked up.
	Sheet string

	// Source describes which input was searched, e.g. "uploaded file".
	Source string
}

func (e *MissingSheetError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("Sheet '%s' not found.", e.Sheet)
	}
	return fmt.Sprintf("Sheet '%s' not found in the %s.", e.Sheet, e.Source)
}

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// Format identifies the container format of an input payload.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat inspects the leading bytes of data.
func DetectFormat(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX, nil
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS, nil
	case looksLikeText(data):
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// looksLikeText rejects payloads carrying NUL bytes in their first 4KB,
// unless they open with a UTF-16 byte order mark.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		return true
	}
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	return bytes.IndexByte(head, 0) < 0
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options tune how payloads are decoded.
type Options struct {
	// CSVEncoding is "auto" (BOM sniffing, then UTF-8, then Windows-1252),
	// or an explicit "utf-8", "utf-16le", "utf-16be", "windows-1252",
	// "iso-8859-1".
	CSVEncoding string

	// CSVDelimiter defaults to ','.
	CSVDelimiter rune
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{CSVEncoding: "auto", CSVDelimiter: ','}
}

// =============================================================================
// WORKBOOK
// =============================================================================

// sheetSource is implemented by each container format.
type sheetSource interface {
	sheetNames() []string
	rows(sheet string) ([][]string, error)
	close() error
}

// Workbook is an opened input. Sheets are decoded on first access.
type Workbook struct {
	// Source names the input in error messages ("uploaded file").
	Source string

	// Format is the detected container format.
	Format Format

	src    sheetSource
	tables map[string]*Table
}

// Open detects the format of data and prepares it for reading.
//
// PARAMETERS:
//   - source: human-readable name of the input, used in MissingSheetError.
//   - data:   the raw payload.
//   - opts:   decoding options.
//
// RETURNS:
//   - A Workbook, which must be closed.
//   - ErrUnsupportedFormat, or a wrapped decoding error.
func Open(source string, data []byte, opts Options) (*Workbook, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var src sheetSource
	switch format {
	case FormatXLSX:
		src, err = openXLSX(data)
	case FormatXLS:
		src, err = openXLS(data)
	case FormatCSV:
		src, err = openCSV(data, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s as %s: %w", source, format, err)
	}

	return &Workbook{
		Source: source,
		Format: format,
		src:    src,
		tables: make(map[string]*Table),
	}, nil
}

// Close releases the underlying reader.
func (w *Workbook) Close() error {
	if w == nil || w.src == nil {
		return nil
	}
	return w.src.close()
}

// SheetNames lists sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.src.sheetNames()
}

// Sheet returns the named sheet as a Table, or *MissingSheetError.
// An exact name match is preferred; otherwise a case-insensitive, trimmed
// match is accepted.
func (w *Workbook) Sheet(name string) (*Table, error) {
	resolved, ok := w.resolve(name)
	if !ok {
		return nil, &MissingSheetError{Sheet: name, Source: w.Source}
	}
	if t, ok := w.tables[resolved]; ok {
		return t, nil
	}

	rows, err := w.src.rows(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", resolved, err)
	}

	t := newTable(resolved, rows)
	w.tables[resolved] = t
	return t, nil
}

func (w *Workbook) resolve(name string) (string, bool) {
	names := w.src.sheetNames()
	if w.Format == FormatCSV && len(names) == 1 {
		return names[0], true
	}
	for _, n := range names {
		if n == name {
			return n, true
		}
	}
	want := strings.TrimSpace(name)
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), want) {
			return n, true
		}
	}
	return "", false
}
