package reconcile

import (
	"testing"

	"github.com/ginjaninja78/community-order-filter/internal/directory"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

func line(row int, order, mobile, address, flatNo, status string) types.OrderLine {
	return types.OrderLine{
		RowNumber:       row,
		OrderNumber:     order,
		Mobile:          mobile,
		ShippingAddress: address,
		FlatNumber:      flatNo,
		Status:          status,
		ItemCount:       "1",
		Price:           "10",
	}
}

func orderNumbers(lines []types.OrderLine) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.OrderNumber)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddressMatches(t *testing.T) {
	tests := []struct {
		name    string
		address string
		flat    string
		known   bool
		want    bool
	}{
		{"unknown mobile", "Flat 999", "", false, true},
		{"blank address", "  ", "A204", true, true},
		{"digits agree", "Tower A, flat 204", "A204", true, true},
		{"digits differ", "Tower A, flat 205", "A204", true, false},
		{"no digits in address", "Tower A", "A204", true, false},
		{"no digits in flat", "Flat 12", "Villa", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddressMatches(tt.address, tt.flat, tt.known); got != tt.want {
				t.Errorf("AddressMatches(%q, %q) = %v, want %v", tt.address, tt.flat, got, tt.want)
			}
		})
	}
}

func TestReconcileBuckets(t *testing.T) {
	dir := directory.New([]types.DirectoryEntry{
		{Mobile: "900", Flat: "A204"},
		{Mobile: "901", Flat: "B1007"},
		{Mobile: "902", Flat: ""},
	})

	lines := []types.OrderLine{
		line(2, "O1", "900", "A 204", "wrong", "Pending"),
		line(3, "O2", "901", "flat 1008", "B1008", "pending"),
		line(4, "O3", "999", "anything 5", "C101", "Accepted"),
		line(5, "O4", "900", "", "", " completed "),
		line(6, "O5", "902", "Flat 77", "D701", "Rejected"),
		line(7, "O6", "902", "Flat 77", "D701", "Accepted"),
		line(8, "O7", " 901 ", "", "", "Accepted"),
	}

	res := NewEngine(DefaultOptions()).Reconcile(lines, dir)

	if res.Input != 7 || res.Excluded != 2 {
		t.Fatalf("input/excluded = %d/%d, want 7/2", res.Input, res.Excluded)
	}

	if got := orderNumbers(res.Main); !equalStrings(got, []string{"O1", "O7"}) {
		t.Errorf("main = %v", got)
	}
	if got := orderNumbers(res.NewNumber); !equalStrings(got, []string{"O3", "O6"}) {
		t.Errorf("new number = %v", got)
	}
	if got := orderNumbers(res.Flagged); !equalStrings(got, []string{"O2"}) {
		t.Errorf("flagged = %v", got)
	}

	if res.Main[0].FlatNumber != "A204" || res.Main[1].FlatNumber != "B1007" {
		t.Errorf("main flats not overwritten: %q, %q", res.Main[0].FlatNumber, res.Main[1].FlatNumber)
	}
	if res.Flagged[0].FlatNumber != "B1008" {
		t.Errorf("flagged flat changed to %q", res.Flagged[0].FlatNumber)
	}
	if lines[0].FlatNumber != "wrong" {
		t.Error("input slice was modified")
	}
}

func TestReconcilePartition(t *testing.T) {
	dir := directory.New([]types.DirectoryEntry{{Mobile: "900", Flat: "A204"}})
	lines := []types.OrderLine{
		line(2, "O1", "900", "204", "", "new"),
		line(3, "O1", "900", "205", "", "new"),
		line(4, "O2", "800", "", "B101", "new"),
		line(5, "O3", "900", "", "", "COMPLETED"),
	}

	res := NewEngine(DefaultOptions()).Reconcile(lines, dir)

	seen := 0
	for _, l := range lines {
		b, ok := res.bucketOf(l.RowNumber)
		if l.Status == "COMPLETED" {
			if ok {
				t.Errorf("excluded row %d assigned to %s", l.RowNumber, b)
			}
			continue
		}
		if !ok {
			t.Errorf("row %d in no bucket", l.RowNumber)
		}
		seen++
	}
	if total := len(res.Main) + len(res.NewNumber) + len(res.Flagged); total != seen {
		t.Errorf("bucket sizes sum to %d, want %d", total, seen)
	}
}

func TestFlaggedTotalsAreSeparate(t *testing.T) {
	dir := directory.New([]types.DirectoryEntry{{Mobile: "900", Flat: "A204"}})

	ok := line(2, "O1", "900", "204", "", "new")
	ok.ItemCount, ok.Price = "2", "100"
	bad := line(3, "O1", "900", "999", "", "new")
	bad.ItemCount, bad.Price = "3", "50"

	res := NewEngine(DefaultOptions()).Reconcile([]types.OrderLine{ok, bad}, dir)

	if got := res.Totals.Amount("O1").StringFixed(2); got != "200.00" {
		t.Errorf("valid total = %s, want 200.00", got)
	}
	if got := res.FlaggedTotals.Amount("O1").StringFixed(2); got != "150.00" {
		t.Errorf("flagged total = %s, want 150.00", got)
	}
	if got := res.FlaggedTotals.Items("O1").String(); got != "3" {
		t.Errorf("flagged items = %s, want 3", got)
	}
}

func TestCustomExcludedStatuses(t *testing.T) {
	e := NewEngine(Options{ExcludedStatuses: []string{"cancelled"}})
	if !e.Excluded(" Cancelled ") {
		t.Error("custom status not excluded")
	}
	if e.Excluded("COMPLETED") {
		t.Error("default status excluded despite override")
	}
}
