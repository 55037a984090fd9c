package cart

import (
	"github.com/shopspring/decimal"
)

var (
	// TaxRate is the flat sales tax applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.0475")
	// ShippingThreshold is the subtotal at which shipping becomes free.
	ShippingThreshold = decimal.NewFromInt(100)
	// ShippingRate is the flat shipping charge below the threshold.
	ShippingRate = decimal.NewFromInt(10)
)

// Totals is the priced view of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals prices the cart. Tax is rounded to cents; subtotal and
// shipping are exact, so total = subtotal + shipping + tax always holds.
func ComputeTotals(state State) Totals {
	subtotal := decimal.Zero
	for _, item := range state.Items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	// Nothing to ship on an empty cart, so the flat rate only applies once
	// at least one line exists.
	shipping := decimal.Zero
	if len(state.Items) > 0 && subtotal.LessThan(ShippingThreshold) {
		shipping = ShippingRate
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// ItemCount sums the quantities across all lines.
func ItemCount(state State) int {
	count := 0
	for _, item := range state.Items {
		count += item.Quantity
	}
	return count
}
