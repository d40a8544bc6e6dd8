package converter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/community-order-filter/internal/tabular"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

var orderHeader = []interface{}{
	"Order Number", "Order Status", "Customer Mobile Number", "Shipping Address",
	"Flat Number", "Item Count", "Price", "Discounted Price", "Confirmed Order",
	"Payment Mode", "Payment Status", "Product Name", "Catalogue Group", "Tax %", "Tax Amount",
}

func workbook(t *testing.T, sheet string, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	return rows
}

func column(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func TestRunEndToEnd(t *testing.T) {
	orders := workbook(t, "Inquiries with order meta",
		orderHeader,
		[]interface{}{"O1", "Pending", "900", "A-204", "", "2", "100", "", true, "PhonePe", "Successful", "Rice", "Grains", "5", "10"},
		[]interface{}{"O1", "Pending", "900", "", "", "3", "80", "50", true, "PhonePe", "Successful", "Dal", "", "", ""},
		[]interface{}{"O2", "Completed", "900", "", "", "1", "10", "", false, "", "", "Salt", "", "", ""},
		[]interface{}{"O3", "Accepted", "800", "B 101", "B101", "1", "30", "", false, "Cash", "", "Oil", "", "", ""},
		[]interface{}{"O4", "Accepted", "901", "flat 999", "C303", "4", "5", "", false, "", "", "Soap", "", "", ""},
	)
	dir := workbook(t, "Cust_Data",
		[]interface{}{"Mb No", "Flat No"},
		[]interface{}{"900", "A204"},
		[]interface{}{"901", "C303"},
	)

	res := New(DefaultOptions(), nil).Run(orders, dir)
	if !res.Success {
		t.Fatalf("run failed: %v", res.Error)
	}

	wantSheets := []string{"Flagged_Add", "Sheet1", "Sheet2", "New_Num", "Tower A", "Tower B", "Cust_Data"}
	if len(res.Sheets) != len(wantSheets) {
		t.Fatalf("sheets = %v, want %v", res.Sheets, wantSheets)
	}
	for i := range wantSheets {
		if res.Sheets[i] != wantSheets[i] {
			t.Fatalf("sheets = %v, want %v", res.Sheets, wantSheets)
		}
	}

	main := readSheet(t, res.Output, "Sheet1")
	if len(main) != 3 {
		t.Fatalf("Sheet1 rows = %d, want header + 2", len(main))
	}
	hdr := main[0]
	for _, r := range main[1:] {
		if r[column(hdr, "Order #")] != "O1" {
			t.Errorf("unexpected order %v", r)
		}
		if r[column(hdr, "Flat #")] != "A204" {
			t.Errorf("flat not taken from directory: %v", r)
		}
		if got := r[column(hdr, "T Amt")]; got != "350" {
			t.Errorf("T Amt = %s, want 350", got)
		}
		if got := r[column(hdr, "Total Items")]; got != "5" {
			t.Errorf("Total Items = %s, want 5", got)
		}
		if r[column(hdr, "Cnf")] != "T" || r[column(hdr, "Payment Mode")] != "ONL" || r[column(hdr, "Payment Status")] != "Paid" {
			t.Errorf("derived fields wrong: %v", r)
		}
	}

	flagged := readSheet(t, res.Output, "Flagged_Add")
	if len(flagged) != 2 || flagged[1][0] != "O4" || flagged[1][column(flagged[0], "T Amt")] != "20" {
		t.Errorf("Flagged_Add = %v", flagged)
	}

	ext := readSheet(t, res.Output, "Sheet2")
	if len(ext[0]) != len(types.ExtendedHeaders) || len(ext) != 4 {
		t.Errorf("Sheet2 = %v", ext)
	}

	custData := readSheet(t, res.Output, "Cust_Data")
	last := custData[len(custData)-1]
	if len(custData) != 4 || last[0] != "800" || last[1] != "B101" {
		t.Errorf("Cust_Data = %v", custData)
	}

	for _, sheet := range res.Sheets {
		for _, r := range readSheet(t, res.Output, sheet) {
			if len(r) > 0 && r[0] == "O2" {
				t.Errorf("completed order O2 appears in %s", sheet)
			}
		}
	}

	if res.Stats.RowsRead != 5 || res.Stats.RowsExcluded != 1 || res.Stats.FlaggedLines != 1 ||
		res.Stats.NewDirectoryEntries != 1 || res.Stats.TowerSheets != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRunIsIdempotentOnDirectory(t *testing.T) {
	orders := workbook(t, "Inquiries with order meta",
		orderHeader,
		[]interface{}{"O1", "Pending", "800", "", "B101", "1", "10", "", "", "", "", "Oil", "", "", ""},
	)
	dir := workbook(t, "Cust_Data", []interface{}{"Mb No", "Flat No"})

	conv := New(DefaultOptions(), nil)
	first := conv.Run(orders, dir)
	if !first.Success || first.Stats.NewDirectoryEntries != 1 {
		t.Fatalf("first run: %+v", first.Stats)
	}

	second := conv.Run(orders, first.Output)
	if !second.Success {
		t.Fatalf("second run: %v", second.Error)
	}
	if second.Stats.NewDirectoryEntries != 0 {
		t.Errorf("second run added %d entries", second.Stats.NewDirectoryEntries)
	}
	if second.Stats.MainLines != 1 {
		t.Errorf("known customer not matched on second run: %+v", second.Stats)
	}
}

func TestRunUsesStoredPriceNotDisplayedPrice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Inquiries with order meta"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatal(err)
	}
	header := orderHeader
	line := []interface{}{"O1", "Pending", "9876543210", "", "", 3, 12.5, "", true, "", "", "Rice", "", "", ""}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &line); err != nil {
		t.Fatal(err)
	}
	// Price displays as a whole number.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle(sheet, "G2", "G2", style); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	dir := workbook(t, "Cust_Data", []interface{}{"Mb No", "Flat No"})

	res := New(DefaultOptions(), nil).Run(buf.Bytes(), dir)
	if !res.Success {
		t.Fatalf("run failed: %v", res.Error)
	}

	rows := readSheet(t, res.Output, "New_Num")
	if len(rows) != 2 {
		t.Fatalf("New_Num = %v", rows)
	}
	hdr, r := rows[0], rows[1]
	for col, want := range map[string]string{"Price": "12.5", "I Tot": "37.5", "T Amt": "37.5", "Cnf": "T"} {
		if got := r[column(hdr, col)]; got != want {
			t.Errorf("%s = %s, want %s", col, got, want)
		}
	}
}

func TestRunMissingSheet(t *testing.T) {
	orders := workbook(t, "Orders", orderHeader)
	dir := workbook(t, "Cust_Data", []interface{}{"Mb No", "Flat No"})

	res := New(DefaultOptions(), nil).Run(orders, dir)
	if res.Success || res.Output != nil {
		t.Fatal("expected failure without output")
	}
	var missing *tabular.MissingSheetError
	if !errors.As(res.Error, &missing) {
		t.Fatalf("err = %v, want MissingSheetError", res.Error)
	}
	if missing.Sheet != "Inquiries with order meta" || missing.Source != SourceOrders {
		t.Errorf("missing = %+v", missing)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	dir := workbook(t, "Cust_Data", []interface{}{"Mb No", "Flat No"})
	res := New(DefaultOptions(), nil).Run([]byte{0x00, 0x01, 0x02}, dir)
	if !errors.Is(res.Error, tabular.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", res.Error)
	}
}
