package tabular

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

// xlsSource reads legacy BIFF workbooks. Rows are decoded eagerly because
// the underlying reader is not safe to revisit after a failed access.
type xlsSource struct {
	names  []string
	sheets map[string][][]string
}

func openXLS(data []byte) (src *xlsSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("corrupt xls workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}

	src = &xlsSource{sheets: make(map[string][][]string)}
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		src.names = append(src.names, sheet.Name)
		src.sheets[sheet.Name] = readXLSSheet(sheet)
	}
	return src, nil
}

func readXLSSheet(sheet *xls.WorkSheet) [][]string {
	var out [][]string
	for r := 0; r <= int(sheet.MaxRow); r++ {
		out = append(out, xlsCells(sheet, r))
	}
	return trimTrailingRows(out)
}

// xlsCells returns nil for rows the file does not store.
func xlsCells(sheet *xls.WorkSheet, r int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()
	row := sheet.Row(r)
	if row == nil {
		return nil
	}
	for c := 0; c <= row.LastCol(); c++ {
		cells = append(cells, row.Col(c))
	}
	return trimTrailing(cells)
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return cells[:n]
}

func trimTrailingRows(rows [][]string) [][]string {
	n := len(rows)
	for n > 0 && len(rows[n-1]) == 0 {
		n--
	}
	return rows[:n]
}

func (s *xlsSource) sheetNames() []string {
	return s.names
}

func (s *xlsSource) rows(sheet string) ([][]string, error) {
	return s.sheets[sheet], nil
}

func (s *xlsSource) close() error {
	return nil
}
