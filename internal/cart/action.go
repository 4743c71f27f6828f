package cart

import (
	"slices"

	"storefront-be/internal/product"
)

// Action is one of the cart mutations below.
type Action interface {
	cartAction()
}

// AddToCart adds one unit of Product in Size, merging with an existing line.
type AddToCart struct {
	Product product.Product
	Size    string
}

// RemoveFromCart drops the line; unknown ids are ignored.
type RemoveFromCart struct {
	CartItemID string
}

// UpdateQuantity sets the line quantity, clamped to at least 1; unknown ids
// are ignored.
type UpdateQuantity struct {
	CartItemID string
	Quantity   int
}

type ClearCart struct{}

func (AddToCart) cartAction()      {}
func (RemoveFromCart) cartAction() {}
func (UpdateQuantity) cartAction() {}
func (ClearCart) cartAction()      {}

// Reduce returns the cart after applying a. prev is never modified, and is
// returned as is when a changes nothing.
func Reduce(prev Cart, a Action) Cart {
	switch a := a.(type) {
	case AddToCart:
		id := ItemID(a.Product.ID, a.Size)
		items := slices.Clone(prev.Items)
		if i := prev.index(id); i >= 0 {
			items[i].Quantity++
		} else {
			items = append(items, Line{
				CartItemID:   id,
				Product:      a.Product.Clone(),
				SelectedSize: a.Size,
				Quantity:     1,
			})
		}
		return Cart{Items: items}

	case RemoveFromCart:
		i := prev.index(a.CartItemID)
		if i < 0 {
			return prev
		}
		return Cart{Items: slices.Delete(slices.Clone(prev.Items), i, i+1)}

	case UpdateQuantity:
		i := prev.index(a.CartItemID)
		if i < 0 {
			return prev
		}
		q := max(1, a.Quantity)
		if prev.Items[i].Quantity == q {
			return prev
		}
		items := slices.Clone(prev.Items)
		items[i].Quantity = q
		return Cart{Items: items}

	case ClearCart:
		if len(prev.Items) == 0 {
			return prev
		}
		return Empty()
	}
	return prev
}

func sameCart(a, b Cart) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	return len(a.Items) == 0 || &a.Items[0] == &b.Items[0]
}

// normalize repairs a cart read from storage: ids are rebuilt from the
// product and size, quantities are clamped to at least 1 and duplicate
// lines are merged into the first occurrence.
func normalize(c Cart) Cart {
	out := Empty()
	for _, line := range c.Items {
		line.CartItemID = ItemID(line.Product.ID, line.SelectedSize)
		line.Quantity = max(1, line.Quantity)
		if i := out.index(line.CartItemID); i >= 0 {
			out.Items[i].Quantity += line.Quantity
			continue
		}
		out.Items = append(out.Items, line)
	}
	return out
}
