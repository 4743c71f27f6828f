package selector

import (
	"storefront-be/internal/cart"

	"github.com/shopspring/decimal"
)

// Cart page pricing: shipping is free and tax is 2% of the subtotal.
const ShippingCost int64 = 0

var TaxRate = decimal.RequireFromString("0.02")

// TotalItems sums the quantity of every line.
func TotalItems(c cart.Cart) int {
	total := 0
	for _, line := range c.Items {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price x quantity using each line's snapshot price.
func TotalPrice(c cart.Cart) int64 {
	var total int64
	for _, line := range c.Items {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

type OrderSummary struct {
	Items    int   `json:"items"`
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

func Summary(c cart.Cart) OrderSummary {
	subtotal := TotalPrice(c)
	tax := taxOn(subtotal)
	return OrderSummary{
		Items:    TotalItems(c),
		Subtotal: subtotal,
		Shipping: ShippingCost,
		Tax:      tax,
		Total:    subtotal + ShippingCost + tax,
	}
}

// taxOn returns TaxRate of subtotal rounded to the nearest unit, halves up.
func taxOn(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(TaxRate).Round(0).IntPart()
}
