// Package costing holds the pure aggregation math that rolls line items up
// into estimate totals.
package costing

import (
	"github.com/shopspring/decimal"

	"buildcost/internal/domain/entities"
	"buildcost/internal/domain/money"
)

// Totals are the derived estimate aggregates.
type Totals struct {
	Subtotal     decimal.Decimal
	MarkupAmount decimal.Decimal
	VATAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// LineTotal computes round2(quantity * (material + labor)).
func LineTotal(quantity, unitMaterialCost, unitLaborCost decimal.Decimal) decimal.Decimal {
	return money.Round2(quantity.Mul(unitMaterialCost.Add(unitLaborCost)))
}

// Recompute derives the estimate aggregates from the current line items.
//
// The subtotal sums the already-rounded line totals; it can differ in the
// last cent from rounding the unrounded sum, and that is the reconciliation
// rule: what the customer adds up line by line is what the estimate shows.
// VAT applies to subtotal plus markup, not to the subtotal alone.
func Recompute(items []entities.LineItem, markupRate, vatRate decimal.Decimal) Totals {
	sum := decimal.Zero
	for i := range items {
		sum = sum.Add(LineTotal(items[i].Quantity, items[i].UnitMaterialCost, items[i].UnitLaborCost))
	}

	subtotal := money.Round2(sum)
	markup := money.Round2(subtotal.Mul(markupRate).Div(hundred))
	vat := money.Round2(subtotal.Add(markup).Mul(vatRate).Div(hundred))
	total := money.Round2(subtotal.Add(markup).Add(vat))

	return Totals{Subtotal: subtotal, MarkupAmount: markup, VATAmount: vat, TotalAmount: total}
}

// Apply writes the recomputed aggregates back onto the estimate.
func Apply(e *entities.Estimate) {
	t := Recompute(e.LineItems, e.MarkupRate, e.VATRate)
	e.Subtotal = t.Subtotal
	e.MarkupAmount = t.MarkupAmount
	e.VATAmount = t.VATAmount
	e.TotalAmount = t.TotalAmount
}
