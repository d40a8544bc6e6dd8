package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"12", "12"},
		{" 12.50 ", "12.5"},
		{"2 pcs", "2"},
		{"1,200.75", "1200.75"},
		{"1,200", "1200"},
		{"₹ 99", "99"},
		{"-3", "-3"},
		{".5", "0.5"},
		{"1e2", "100"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOrderLineRate(t *testing.T) {
	tests := []struct {
		name       string
		price      string
		discounted string
		want       string
	}{
		{"discount wins when positive", "100", "80", "80"},
		{"zero discount falls back", "100", "0", "100"},
		{"blank discount falls back", "100", "", "100"},
		{"garbage discount falls back", "100", "n/a", "100"},
		{"negative discount falls back", "100", "-5", "100"},
		{"both blank", "", "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := OrderLine{Price: tt.price, DiscountedPrice: tt.discounted}
			if got := l.Rate(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Rate() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineTotalRoundsHalfAwayFromZero(t *testing.T) {
	l := OrderLine{ItemCount: "1", Price: "2.005"}
	if got := l.LineTotal(); !got.Equal(decimal.RequireFromString("2.01")) {
		t.Errorf("LineTotal() = %s, want 2.01", got)
	}
	l = OrderLine{ItemCount: "-1", Price: "2.005"}
	if got := l.LineTotal(); !got.Equal(decimal.RequireFromString("-2.01")) {
		t.Errorf("LineTotal() = %s, want -2.01", got)
	}
}

func TestTotalsOf(t *testing.T) {
	lines := []OrderLine{
		{OrderNumber: "1001", ItemCount: "2", Price: "100"},
		{OrderNumber: "1001", ItemCount: "3", Price: "60", DiscountedPrice: "50"},
		{OrderNumber: "1002", ItemCount: "x", Price: "10"},
	}
	totals := TotalsOf(lines)

	if got := totals.Amount("1001"); !got.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Amount(1001) = %s, want 350", got)
	}
	if got := totals.Items("1001"); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Items(1001) = %s, want 5", got)
	}
	if !totals.has("1002") || !totals.Amount("1002").IsZero() {
		t.Errorf("order 1002 should be present with zero total")
	}
	if totals.has("9999") {
		t.Errorf("unknown order reported as present")
	}
	if totals.Len() != 2 {
		t.Errorf("Len() = %d, want 2", totals.Len())
	}
}

func TestBucketString(t *testing.T) {
	if BucketMain.String() != "main" || BucketNewNumber.String() != "new_number" || BucketFlagged.String() != "flagged" {
		t.Errorf("unexpected bucket names")
	}
}
