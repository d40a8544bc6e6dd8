package tabular

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Table is one sheet: a header row and the data rows beneath it.
// Fully blank data rows are dropped when the table is built.
type Table struct {
	Name    string
	Headers []string

	rows  [][]string
	index map[string]int
}

// Row is a positional view of one data row.
type Row struct {
	// Number is the 1-based row number in the source sheet.
	Number int

	cells []string
}

// NormalizeHeader folds a header cell into its lookup form.
func NormalizeHeader(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

func newTable(name string, raw [][]string) *Table {
	t := &Table{Name: name, index: make(map[string]int)}
	if len(raw) == 0 {
		return t
	}

	t.Headers = make([]string, len(raw[0]))
	for i, h := range raw[0] {
		t.Headers[i] = strings.TrimSpace(h)
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		// duplicate headers: last one wins
		t.index[key] = i
	}

	for _, r := range raw[1:] {
		t.rows = append(t.rows, r)
	}
	return t
}

// Column returns the position of header, or -1 when absent.
func (t *Table) Column(header string) int {
	if i, ok := t.index[NormalizeHeader(header)]; ok {
		return i
	}
	return -1
}

// MissingColumns returns the headers from want that are not present.
func (t *Table) MissingColumns(want []string) []string {
	var missing []string
	for _, h := range want {
		if t.Column(h) < 0 {
			missing = append(missing, h)
		}
	}
	return missing
}

// Len is the number of data rows, including blank ones.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the non-blank data rows in sheet order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for i, r := range t.rows {
		if isRowEmpty(r) {
			continue
		}
		out = append(out, Row{Number: i + 2, cells: r})
	}
	return out
}

// Cell returns the value at column position col; "" when col is negative or
// past the end of the row.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.cells) {
		return ""
	}
	return r.cells[col]
}

// Text is Cell with surrounding whitespace removed.
func (r Row) Text(col int) string {
	return strings.TrimSpace(r.Cell(col))
}

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
