package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// xlsxSource reads Office Open XML workbooks with excelize.
type xlsxSource struct {
	f *excelize.File
}

func openXLSX(data []byte) (*xlsxSource, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &xlsxSource{f: f}, nil
}

func (s *xlsxSource) sheetNames() []string {
	return s.f.GetSheetList()
}

// rows returns stored cell values, ignoring number formats so a price
// displayed as "13" still reads as 12.5. Boolean cells are stored as 1/0
// and come back as "TRUE"/"FALSE".
func (s *xlsxSource) rows(sheet string) ([][]string, error) {
	rows, err := s.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, v := range row {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := s.f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			if typ == excelize.CellTypeBool {
				row[c] = boolText(v)
			}
		}
	}
	return rows, nil
}

func boolText(v string) string {
	if v == "1" {
		return "TRUE"
	}
	return "FALSE"
}

func (s *xlsxSource) close() error {
	return s.f.Close()
}
