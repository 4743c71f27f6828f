package selector

import (
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/product"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	cheap := product.Product{ID: 1, Price: 500, Stock: product.Stock{"8": 5}}
	dear := product.Product{ID: 2, Price: 1000, Stock: product.Stock{"9": 5}}

	c := cart.Empty()
	c = cart.Reduce(c, cart.AddToCart{Product: cheap, Size: "8"})
	c = cart.Reduce(c, cart.AddToCart{Product: cheap, Size: "8"})
	c = cart.Reduce(c, cart.AddToCart{Product: dear, Size: "9"})

	assert.Equal(t, 3, TotalItems(c))
	assert.Equal(t, int64(500*2+1000*1), TotalPrice(c))

	assert.Equal(t, 0, TotalItems(cart.Empty()))
	assert.Equal(t, int64(0), TotalPrice(cart.Empty()))
}

func TestTotalPriceUsesSnapshotPrice(t *testing.T) {
	live := product.Product{ID: 1, Price: 500}
	c := cart.Reduce(cart.Empty(), cart.AddToCart{Product: live})

	live.Price = 10000

	assert.Equal(t, int64(500), TotalPrice(c))
}

func TestSummary(t *testing.T) {
	p := product.Product{ID: 1, Price: 7495}
	c := cart.Reduce(cart.Empty(), cart.AddToCart{Product: p, Size: "8"})
	c = cart.Reduce(c, cart.UpdateQuantity{CartItemID: "1-8", Quantity: 2})

	s := Summary(c)
	assert.Equal(t, OrderSummary{
		Items:    2,
		Subtotal: 14990,
		Shipping: 0,
		Tax:      300,
		Total:    15290,
	}, s)
}

func TestTaxOn(t *testing.T) {
	assert.Equal(t, int64(0), taxOn(0))
	assert.Equal(t, int64(1), taxOn(25), "0.5 rounds up")
	assert.Equal(t, int64(0), taxOn(24))
	assert.Equal(t, int64(40), taxOn(2000))
	assert.Equal(t, int64(450), taxOn(22485))
}
