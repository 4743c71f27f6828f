package cart

import (
	"fmt"

	"storefront-be/internal/product"
)

// Line is one cart entry. Product is a snapshot taken when the line was
// created; later catalog changes do not reach it.
type Line struct {
	CartItemID   string          `json:"cartItemId"`
	Product      product.Product `json:"product"`
	SelectedSize string          `json:"selectedSize"`
	Quantity     int             `json:"quantity"`
}

// Cart is the ordered list of lines, in insertion order.
type Cart struct {
	Items []Line `json:"items"`
}

func Empty() Cart {
	return Cart{Items: []Line{}}
}

// ItemID builds the line key for a product and size. Products without
// sizes use the empty size, giving ids like "12-".
func ItemID(productID int, size string) string {
	return fmt.Sprintf("%d-%s", productID, size)
}

// Line returns the line with the given id.
func (c Cart) Line(id string) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.Items[i], true
	}
	return Line{}, false
}

func (c Cart) index(id string) int {
	for i, line := range c.Items {
		if line.CartItemID == id {
			return i
		}
	}
	return -1
}
