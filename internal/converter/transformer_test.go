package converter

import (
	"testing"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

func TestDerivePayment(t *testing.T) {
	tests := []struct {
		mode, status       string
		wantMode, wantStat string
	}{
		{"PhonePe", "Successful", "ONL", "Paid"},
		{" phonepe ", "SUCCESSFUL", "ONL", "Paid"},
		{"PhonePe", "Pending", "", "Due"},
		{"Cash", "Successful", "", "Due"},
		{"", "", "", "Due"},
	}
	for _, tt := range tests {
		mode, status := DerivePayment(tt.mode, tt.status)
		if mode != tt.wantMode || status != tt.wantStat {
			t.Errorf("DerivePayment(%q, %q) = %q, %q; want %q, %q",
				tt.mode, tt.status, mode, status, tt.wantMode, tt.wantStat)
		}
	}
}

func TestConfirmedFlag(t *testing.T) {
	for in, want := range map[string]string{"TRUE": "T", " true ": "T", "FALSE": "F", "": "F", "yes": "F"} {
		if got := ConfirmedFlag(in); got != want {
			t.Errorf("ConfirmedFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTransformUsesGivenTotals(t *testing.T) {
	lines := []types.OrderLine{
		{OrderNumber: "O1", ItemCount: "2", Price: "100", ProductName: "Rice", CatalogueGroup: "Grains"},
		{OrderNumber: "O1", ItemCount: "3", Price: "80", DiscountedPrice: "50", TaxPercent: "5"},
	}
	tr := NewTransformer(types.TotalsOf(lines))

	rows := tr.TransformAll(lines)
	for i, r := range rows {
		if r.TotalAmount.StringFixed(2) != "350.00" {
			t.Errorf("row %d total = %s, want 350.00", i, r.TotalAmount.StringFixed(2))
		}
		if r.TotalItems.String() != "5" {
			t.Errorf("row %d items = %s, want 5", i, r.TotalItems)
		}
		if r.Extended || r.CatalogueGroup != "" {
			t.Errorf("row %d carries extended fields", i)
		}
	}
	if rows[1].Rate.String() != "50" || rows[1].LineTotal.String() != "150" {
		t.Errorf("discounted row rate/total = %s/%s", rows[1].Rate, rows[1].LineTotal)
	}

	ext := tr.Extended().Transform(lines[0])
	if !ext.Extended || ext.CatalogueGroup != "Grains" || len(ext.Values()) != len(types.ExtendedHeaders) {
		t.Errorf("extended row = %+v", ext)
	}

	other := NewTransformer(types.TotalsOf(nil)).Transform(lines[0])
	if !other.TotalAmount.IsZero() {
		t.Errorf("empty scope total = %s", other.TotalAmount)
	}
}
