// =============================================================================
// Community Order Filter - Report Writer
// =============================================================================
//
// This module serialises the reconciled, transformed rows into the output
// workbook.
//
// SHEET ORDER:
//   1. Flagged_Add   flagged lines (only when there are any)
//   2. Sheet1        main lines
//   3. Sheet2        main + new-number lines, extended columns
//   4. New_Num       new-number lines (only when there are any)
//   5. Tower <L>     one per tower label with rows, blank row between flats
//   6. Cust_Data     directory with new entries appended
//
// The header text and column order are fixed; styling follows the delivery
// team's printed sheet layout.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/community-order-filter/internal/reconcile"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// Output sheet names.
const (
	SheetFlagged     = "Flagged_Add"
	SheetMain        = "Sheet1"
	SheetExtended    = "Sheet2"
	SheetNewNumber   = "New_Num"
	SheetDirectory   = "Cust_Data"
	towerSheetPrefix = "Tower "
)

// TowerSheetName returns the sheet name used for a tower label.
func TowerSheetName(label string) string {
	return towerSheetPrefix + label
}

var decimalOne = decimal.NewFromInt(1)

// Document is everything one output workbook contains.
type Document struct {
	Flagged   []types.OutputRow
	Main      []types.OutputRow
	Extended  []types.OutputRow
	NewNumber []types.OutputRow
	Towers    []reconcile.TowerRows
	Directory []types.DirectoryEntry
}

// SheetNames lists the sheets Write will produce, in order.
func (d *Document) SheetNames() []string {
	var names []string
	if len(d.Flagged) > 0 {
		names = append(names, SheetFlagged)
	}
	names = append(names, SheetMain, SheetExtended)
	if len(d.NewNumber) > 0 {
		names = append(names, SheetNewNumber)
	}
	for _, t := range d.Towers {
		names = append(names, TowerSheetName(t.Label))
	}
	return append(names, SheetDirectory)
}

// =============================================================================
// WRITER
// =============================================================================

// Write renders doc as an xlsx workbook and returns its bytes.
func Write(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &writer{f: f}
	var err error
	if w.styles, err = registerStyles(f); err != nil {
		return nil, fmt.Errorf("failed to register styles: %w", err)
	}

	if len(doc.Flagged) > 0 {
		if err := w.orderSheet(SheetFlagged, types.PrimaryHeaders, doc.Flagged, false); err != nil {
			return nil, err
		}
	}
	if err := w.orderSheet(SheetMain, types.PrimaryHeaders, doc.Main, false); err != nil {
		return nil, err
	}
	if err := w.orderSheet(SheetExtended, types.ExtendedHeaders, doc.Extended, false); err != nil {
		return nil, err
	}
	if len(doc.NewNumber) > 0 {
		if err := w.orderSheet(SheetNewNumber, types.PrimaryHeaders, doc.NewNumber, false); err != nil {
			return nil, err
		}
	}
	for _, t := range doc.Towers {
		if err := w.orderSheet(TowerSheetName(t.Label), types.PrimaryHeaders, t.Rows, true); err != nil {
			return nil, err
		}
	}
	if err := w.directorySheet(doc.Directory); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	f      *excelize.File
	styles *styles
	sheets int
}

// addSheet creates the next sheet; the first one reuses the default sheet a
// new workbook starts with.
func (w *writer) addSheet(name string) error {
	defer func() { w.sheets++ }()
	if w.sheets == 0 {
		return w.f.SetSheetName(w.f.GetSheetName(0), name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

// orderSheet writes a header row and one row per OutputRow. With
// blankBetweenFlats, a blank row separates consecutive rows whose flat
// changes.
func (w *writer) orderSheet(name string, headers []string, rows []types.OutputRow, blankBetweenFlats bool) error {
	if err := w.addSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := w.header(name, headers); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}

	rowIdx := 2
	lastFlat := ""
	for _, r := range rows {
		if blankBetweenFlats && lastFlat != "" && lastFlat != r.Flat {
			if err := w.f.SetRowHeight(name, rowIdx, dataRowHeight); err != nil {
				return err
			}
			rowIdx++
		}
		if err := w.dataRow(name, rowIdx, headers, r); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", rowIdx, name, err)
		}
		rowIdx++
		lastFlat = r.Flat
	}
	return nil
}

func (w *writer) header(sheet string, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, columnWidths[h]); err != nil {
			return err
		}
	}
	if err := w.f.SetSheetRow(sheet, "A1", &values); err != nil {
		return err
	}
	if err := w.f.SetRowHeight(sheet, 1, headerRowHeight); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return w.f.SetCellStyle(sheet, "A1", last, w.styles.header)
}

func (w *writer) dataRow(sheet string, rowIdx int, headers []string, r types.OutputRow) error {
	values := r.Values()
	start, _ := excelize.CoordinatesToCellName(1, rowIdx)
	if err := w.f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	if err := w.f.SetRowHeight(sheet, rowIdx, dataRowHeight); err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err := w.f.SetCellStyle(sheet, cell, cell, w.cellStyle(h, r)); err != nil {
			return err
		}
	}
	return nil
}

// cellStyle picks the style for one cell: quantities above one are bold
// green, a Due status is bold red.
func (w *writer) cellStyle(header string, r types.OutputRow) int {
	switch {
	case header == types.HdrQty && r.Quantity.GreaterThan(decimalOne):
		return w.styles.qtyStrong
	case header == types.HdrPaymentStatus && r.PaymentStatus == types.PaymentStatusDue:
		return w.styles.due
	case numericColumns[header]:
		return w.styles.number
	default:
		return w.styles.text
	}
}

func (w *writer) directorySheet(entries []types.DirectoryEntry) error {
	const name = SheetDirectory
	if err := w.addSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := []interface{}{types.ColDirMobile, types.ColDirFlat}
	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if err := w.f.SetCellStyle(name, "A1", "B1", w.styles.dirHeader); err != nil {
		return err
	}
	if err := w.f.SetRowHeight(name, 1, dirHeaderRowHeight); err != nil {
		return err
	}
	for i, width := range directoryWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(name, col, col, width); err != nil {
			return err
		}
	}

	for i, e := range entries {
		rowIdx := i + 2
		// mobile numbers stay text so leading zeros and long digit runs survive
		row := []interface{}{strings.TrimSpace(e.Mobile), strings.TrimSpace(e.Flat)}
		start, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := w.f.SetSheetRow(name, start, &row); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(2, rowIdx)
		if err := w.f.SetCellStyle(name, start, end, w.styles.text); err != nil {
			return err
		}
	}
	return nil
}
