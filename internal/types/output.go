package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// OUTPUT SCHEMA
// =============================================================================

// Output column headers. The text is part of the report contract.
const (
	HdrOrder          = "Order #"
	HdrFlat           = "Flat #"
	HdrMobile         = "Mobile No"
	HdrConfirmed      = "Cnf"
	HdrProductName    = "Product Name"
	HdrQty            = "Qty"
	HdrPrice          = "Price"
	HdrLineTotal      = "I Tot"
	HdrTotalItems     = "Total Items"
	HdrPaymentMode    = "Payment Mode"
	HdrPaymentStatus  = "Payment Status"
	HdrTotalAmount    = "T Amt"
	HdrCatalogueGroup = "Catalogue Group"
	HdrTaxPercent     = "Tax %"
	HdrTaxAmount      = "Tax Amount"
)

// Payment labels written to the report.
const (
	PaymentModeOnline = "ONL"
	PaymentStatusPaid = "Paid"
	PaymentStatusDue  = "Due"
)

// PrimaryHeaders is the column order of the main report sheets.
var PrimaryHeaders = []string{
	HdrOrder, HdrFlat, HdrMobile, HdrConfirmed, HdrProductName, HdrQty, HdrPrice,
	HdrLineTotal, HdrTotalItems, HdrPaymentMode, HdrPaymentStatus, HdrTotalAmount,
}

// ExtendedHeaders is PrimaryHeaders plus the pass-through catalogue/tax columns.
var ExtendedHeaders = append(append([]string{}, PrimaryHeaders...),
	HdrCatalogueGroup, HdrTaxPercent, HdrTaxAmount)

// OutputRow is a report-ready order line.
type OutputRow struct {
	OrderNumber string
	Flat        string
	Mobile      string
	Confirmed   string // "T" or "F"
	ProductName string

	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	LineTotal   decimal.Decimal
	TotalItems  decimal.Decimal
	TotalAmount decimal.Decimal

	PaymentMode   string
	PaymentStatus string

	// Extended is set for rows built for the extended schema.
	Extended       bool
	CatalogueGroup string
	TaxPercent     string
	TaxAmount      string
}

// Values returns the row's cells in header order, numbers as float64 so the
// writer can apply number formats.
func (r OutputRow) Values() []interface{} {
	v := []interface{}{
		r.OrderNumber,
		r.Flat,
		r.Mobile,
		r.Confirmed,
		r.ProductName,
		r.Quantity.InexactFloat64(),
		r.Rate.InexactFloat64(),
		r.LineTotal.InexactFloat64(),
		r.TotalItems.InexactFloat64(),
		r.PaymentMode,
		r.PaymentStatus,
		r.TotalAmount.InexactFloat64(),
	}
	if r.Extended {
		v = append(v, r.CatalogueGroup, r.TaxPercent, r.TaxAmount)
	}
	return v
}
