package converter

import (
	"github.com/ginjaninja78/community-order-filter/internal/tabular"
	"github.com/ginjaninja78/community-order-filter/internal/types"
)

// orderColumns holds the resolved position of every order column; -1 marks
// a column the sheet lacks.
type orderColumns struct {
	order, status, mobile, address, flat int
	items, price, discounted, product    int
	confirmed, payMode, payStatus        int
	catalogue, taxPercent, taxAmount     int
}

func resolveOrderColumns(t *tabular.Table) orderColumns {
	return orderColumns{
		order:      t.Column(types.ColOrderNumber),
		status:     t.Column(types.ColOrderStatus),
		mobile:     t.Column(types.ColMobile),
		address:    t.Column(types.ColShippingAddress),
		flat:       t.Column(types.ColFlatNumber),
		items:      t.Column(types.ColItemCount),
		price:      t.Column(types.ColPrice),
		discounted: t.Column(types.ColDiscountedPrice),
		product:    t.Column(types.ColProductName),
		confirmed:  t.Column(types.ColConfirmedOrder),
		payMode:    t.Column(types.ColPaymentMode),
		payStatus:  t.Column(types.ColPaymentStatus),
		catalogue:  t.Column(types.ColCatalogueGroup),
		taxPercent: t.Column(types.ColTaxPercent),
		taxAmount:  t.Column(types.ColTaxAmount),
	}
}

// ReadOrderLines decodes every non-blank row of the order sheet. Identifier
// fields are trimmed; free-text and numeric fields are kept as read.
func ReadOrderLines(t *tabular.Table) []types.OrderLine {
	c := resolveOrderColumns(t)

	rows := t.Rows()
	lines := make([]types.OrderLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, types.OrderLine{
			RowNumber:       r.Number,
			OrderNumber:     r.Text(c.order),
			Status:          r.Text(c.status),
			Mobile:          r.Text(c.mobile),
			ShippingAddress: r.Text(c.address),
			FlatNumber:      r.Text(c.flat),
			ItemCount:       r.Cell(c.items),
			Price:           r.Cell(c.price),
			DiscountedPrice: r.Cell(c.discounted),
			ProductName:     r.Cell(c.product),
			ConfirmedOrder:  r.Cell(c.confirmed),
			PaymentMode:     r.Cell(c.payMode),
			PaymentStatus:   r.Cell(c.payStatus),
			CatalogueGroup:  r.Cell(c.catalogue),
			TaxPercent:      r.Cell(c.taxPercent),
			TaxAmount:       r.Cell(c.taxAmount),
		})
	}
	return lines
}
