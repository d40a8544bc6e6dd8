package types

import "github.com/shopspring/decimal"

// OrderTotals is a read-only table of per-order aggregates for one
// aggregation scope. Build it with a TotalsBuilder; once built it is never
// mutated, so it can be shared freely between transformer calls.
type OrderTotals struct {
	amount map[string]decimal.Decimal
	items  map[string]decimal.Decimal
}

// Amount returns the rounded order total, zero for unknown orders.
func (t OrderTotals) Amount(orderNumber string) decimal.Decimal {
	return t.amount[orderNumber]
}

// Items returns the summed item count, zero for unknown orders.
func (t OrderTotals) Items(orderNumber string) decimal.Decimal {
	return t.items[orderNumber]
}

// has reports whether the order was part of this scope.
func (t OrderTotals) has(orderNumber string) bool {
	_, ok := t.amount[orderNumber]
	return ok
}

// Len is the number of distinct orders in the scope.
func (t OrderTotals) Len() int {
	return len(t.amount)
}

// TotalsBuilder accumulates line amounts before they are rounded.
type TotalsBuilder struct {
	sums  map[string]decimal.Decimal
	items map[string]decimal.Decimal
}

// NewTotalsBuilder returns an empty builder.
func NewTotalsBuilder() *TotalsBuilder {
	return &TotalsBuilder{
		sums:  make(map[string]decimal.Decimal),
		items: make(map[string]decimal.Decimal),
	}
}

// Add folds one line into its order's running sums.
func (b *TotalsBuilder) Add(line OrderLine) {
	qty := line.Quantity()
	b.sums[line.OrderNumber] = b.sums[line.OrderNumber].Add(qty.Mul(line.Rate()))
	b.items[line.OrderNumber] = b.items[line.OrderNumber].Add(qty)
}

// Build rounds every order sum to 2 places and freezes the result.
func (b *TotalsBuilder) Build() OrderTotals {
	t := OrderTotals{
		amount: make(map[string]decimal.Decimal, len(b.sums)),
		items:  make(map[string]decimal.Decimal, len(b.items)),
	}
	for k, v := range b.sums {
		t.amount[k] = v.Round(2)
	}
	for k, v := range b.items {
		t.items[k] = v
	}
	return t
}

// TotalsOf aggregates a slice of lines in one call.
func TotalsOf(lines []OrderLine) OrderTotals {
	b := NewTotalsBuilder()
	for _, l := range lines {
		b.Add(l)
	}
	return b.Build()
}
