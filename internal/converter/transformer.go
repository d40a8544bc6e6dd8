// =============================================================================
// Community Order Filter - Row Transformer
// =============================================================================
//
// This module maps a reconciled order line to the report schema.
//
// DERIVED FIELDS:
//   - Price (rate):  discounted price when positive, otherwise the price
//   - I Tot:         quantity x rate, rounded to 2 places half away from zero
//   - Cnf:           "T" when the confirmed flag reads TRUE, otherwise "F"
//   - Payment:       PhonePe + Successful -> "ONL" / "Paid"; anything else
//                    -> "" / "Due"
//   - Total Items / T Amt: looked up in the totals table for the line's
//                    aggregation scope
//
// The transformer is scope-agnostic. The caller hands it the totals table
// that applies (valid lines or flagged lines) and it never reads any other.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer turns order lines into report rows for one aggregation scope.
type Transformer struct {
	totals   types.OrderTotals
	extended bool
}

// NewTransformer returns a transformer that reads order totals from totals.
func NewTransformer(totals types.OrderTotals) *Transformer {
	return &Transformer{totals: totals}
}

// Extended returns a copy of t that also fills the catalogue group and tax
// columns.
func (t *Transformer) Extended() *Transformer {
	return &Transformer{totals: t.totals, extended: true}
}

// Transform maps one line.
func (t *Transformer) Transform(line types.OrderLine) types.OutputRow {
	mode, status := DerivePayment(line.PaymentMode, line.PaymentStatus)

	row := types.OutputRow{
		OrderNumber:   line.OrderNumber,
		Flat:          line.FlatNumber,
		Mobile:        line.Mobile,
		Confirmed:     ConfirmedFlag(line.ConfirmedOrder),
		ProductName:   line.ProductName,
		Quantity:      line.Quantity(),
		Rate:          line.Rate(),
		LineTotal:     line.LineTotal(),
		TotalItems:    t.totals.Items(line.OrderNumber),
		TotalAmount:   t.totals.Amount(line.OrderNumber),
		PaymentMode:   mode,
		PaymentStatus: status,
	}

	if t.extended {
		row.Extended = true
		row.CatalogueGroup = line.CatalogueGroup
		row.TaxPercent = line.TaxPercent
		row.TaxAmount = line.TaxAmount
	}
	return row
}

// TransformAll maps lines in order.
func (t *Transformer) TransformAll(lines []types.OrderLine) []types.OutputRow {
	out := make([]types.OutputRow, len(lines))
	for i, l := range lines {
		out[i] = t.Transform(l)
	}
	return out
}

// =============================================================================
// FIELD RULES
// =============================================================================

// ConfirmedFlag maps the raw confirmed-order text to "T" or "F".
func ConfirmedFlag(raw string) string {
	if strings.ToUpper(strings.TrimSpace(raw)) == "TRUE" {
		return "T"
	}
	return "F"
}

// DerivePayment maps the raw payment columns. Only a successful PhonePe
// payment counts as paid online.
func DerivePayment(mode, status string) (outMode, outStatus string) {
	if strings.EqualFold(strings.TrimSpace(mode), "phonepe") &&
		strings.EqualFold(strings.TrimSpace(status), "successful") {
		return types.PaymentModeOnline, types.PaymentStatusPaid
	}
	return "", types.PaymentStatusDue
}
