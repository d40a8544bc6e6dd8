package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// Presentation constants.
const (
	fontSize           = 12
	headerRowHeight    = 78
	dataRowHeight      = 15
	dirHeaderRowHeight = 30

	// numFmtThousands is the built-in "#,##0" format.
	numFmtThousands = 3

	colorHeaderFill = "FFFF00"
	colorGreen      = "008000"
	colorRed        = "FF0000"
)

// columnWidths for every output header.
var columnWidths = map[string]float64{
	types.HdrOrder:          7,
	types.HdrFlat:           7,
	types.HdrMobile:         16,
	types.HdrConfirmed:      2,
	types.HdrProductName:    35,
	types.HdrQty:            2.5,
	types.HdrPrice:          5.5,
	types.HdrLineTotal:      5,
	types.HdrTotalItems:     6,
	types.HdrPaymentMode:    5.75,
	types.HdrPaymentStatus:  5.75,
	types.HdrTotalAmount:    6,
	types.HdrCatalogueGroup: 20,
	types.HdrTaxPercent:     8,
	types.HdrTaxAmount:      10,
}

// numericColumns get the thousands number format.
var numericColumns = map[string]bool{
	types.HdrQty:         true,
	types.HdrPrice:       true,
	types.HdrLineTotal:   true,
	types.HdrTotalItems:  true,
	types.HdrTotalAmount: true,
	types.HdrTaxPercent:  true,
	types.HdrTaxAmount:   true,
}

// Directory sheet widths: mobile, flat.
var directoryWidths = []float64{20, 15}

// styles holds the style IDs registered on one workbook.
type styles struct {
	header    int
	text      int
	number    int
	qtyStrong int
	due       int
	dirHeader int
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func registerStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: fontSize},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeaderFill}},
			Border:    thinBorder(),
		}},
		{&s.text, &excelize.Style{
			Font:      &excelize.Font{Size: fontSize},
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Border:    thinBorder(),
		}},
		{&s.number, &excelize.Style{
			Font:      &excelize.Font{Size: fontSize},
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Border:    thinBorder(),
			NumFmt:    numFmtThousands,
		}},
		{&s.qtyStrong, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: fontSize, Color: colorGreen},
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Border:    thinBorder(),
			NumFmt:    numFmtThousands,
		}},
		{&s.due, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: fontSize, Color: colorRed},
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Border:    thinBorder(),
		}},
		{&s.dirHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: fontSize},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeaderFill}},
			Border:    thinBorder(),
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.dst = id
	}
	return s, nil
}
