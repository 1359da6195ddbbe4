package cart

import "github.com/shopspring/decimal"

// Totals are the aggregates derived from a line list. Discount always equals
// Subtotal minus Total; an empty line list yields all zeros.
type Totals struct {
	// Subtotal sums list prices: the original unit price where a markdown
	// exists, the current unit price otherwise.
	Subtotal decimal.Decimal
	// Discount sums (original − current) × quantity over marked-down lines.
	Discount decimal.Decimal
	// Total sums current unit price × quantity.
	Total decimal.Decimal
	// ItemCount sums quantities.
	ItemCount int
}

// Compute derives totals from the given lines. Pure function: no rounding,
// no state, summation order irrelevant.
func Compute(lines []Line) Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		listPrice := l.UnitPrice
		if l.OriginalUnitPrice.GreaterThan(l.UnitPrice) {
			listPrice = l.OriginalUnitPrice
			t.Discount = t.Discount.Add(l.OriginalUnitPrice.Sub(l.UnitPrice).Mul(qty))
		}
		t.Subtotal = t.Subtotal.Add(listPrice.Mul(qty))
		t.Total = t.Total.Add(l.UnitPrice.Mul(qty))
		t.ItemCount += l.Quantity
	}
	return t
}
