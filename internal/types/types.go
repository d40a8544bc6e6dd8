// =============================================================================
// Community Order Filter - Shared Types
// =============================================================================
//
// This package contains the domain types shared across modules to avoid
// import cycles. Types defined here are used by:
//   - tabular    (row decoding)
//   - directory  (lookup + update)
//   - reconcile  (bucketing, aggregation, sorting)
//   - converter  (row transformation)
//   - report     (sheet writing)
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT COLUMN NAMES
// =============================================================================

// Column headers expected on the order export sheet.
const (
	ColOrderNumber     = "Order Number"
	ColOrderStatus     = "Order Status"
	ColMobile          = "Customer Mobile Number"
	ColShippingAddress = "Shipping Address"
	ColFlatNumber      = "Flat Number"
	ColItemCount       = "Item Count"
	ColPrice           = "Price"
	ColDiscountedPrice = "Discounted Price"
	ColConfirmedOrder  = "Confirmed Order"
	ColPaymentMode     = "Payment Mode"
	ColPaymentStatus   = "Payment Status"
	ColProductName     = "Product Name"
	ColCatalogueGroup  = "Catalogue Group"
	ColTaxPercent      = "Tax %"
	ColTaxAmount       = "Tax Amount"
)

// Column headers of the customer directory sheet.
const (
	ColDirMobile = "Mb No"
	ColDirFlat   = "Flat No"
)

// OrderColumns lists every order column the reader looks for.
// The last three are optional and only feed the extended report schema.
var OrderColumns = []string{
	ColOrderNumber, ColOrderStatus, ColMobile, ColShippingAddress, ColFlatNumber,
	ColItemCount, ColPrice, ColDiscountedPrice, ColConfirmedOrder, ColPaymentMode,
	ColPaymentStatus, ColProductName,
}

// OptionalOrderColumns are read when present and left blank otherwise.
var OptionalOrderColumns = []string{ColCatalogueGroup, ColTaxPercent, ColTaxAmount}

// =============================================================================
// ORDER LINE
// =============================================================================

// OrderLine is one raw row of the order export. Values are kept as the text
// read from the sheet; numeric views are derived on demand.
type OrderLine struct {
	// RowNumber is the 1-based sheet row the line came from.
	RowNumber int

	OrderNumber     string
	Status          string
	Mobile          string
	ShippingAddress string

	// FlatNumber may be overwritten once, by the reconciliation engine, with
	// the directory value for the line's mobile number.
	FlatNumber string

	ItemCount       string
	Price           string
	DiscountedPrice string
	ProductName     string
	ConfirmedOrder  string
	PaymentMode     string
	PaymentStatus   string

	CatalogueGroup string
	TaxPercent     string
	TaxAmount      string
}

// Quantity returns the item count, zero when it does not parse.
func (l OrderLine) Quantity() decimal.Decimal {
	return ParseAmount(l.ItemCount)
}

// Rate returns the discounted price when it is positive, otherwise the
// regular price.
func (l OrderLine) Rate() decimal.Decimal {
	if d := ParseAmount(l.DiscountedPrice); d.IsPositive() {
		return d
	}
	return ParseAmount(l.Price)
}

// LineTotal is quantity x rate rounded to 2 places, half away from zero.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Quantity().Mul(l.Rate()).Round(2)
}

// =============================================================================
// BUCKETS
// =============================================================================

// Bucket identifies which partition a reconciled line ended up in.
type Bucket int

const (
	// BucketMain holds lines whose mobile number is in the directory.
	BucketMain Bucket = iota
	// BucketNewNumber holds lines from mobile numbers the directory lacks.
	BucketNewNumber
	// BucketFlagged holds lines whose address contradicts the directory.
	BucketFlagged
)

func (b Bucket) String() string {
	switch b {
	case BucketMain:
		return "main"
	case BucketNewNumber:
		return "new_number"
	case BucketFlagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// =============================================================================
// DIRECTORY ENTRY
// =============================================================================

// DirectoryEntry is one mobile number -> flat identifier pair.
type DirectoryEntry struct {
	Mobile string
	Flat   string
}
