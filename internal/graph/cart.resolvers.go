package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Cart is the resolver for the cart field.
func (r *queryResolver) Cart(ctx context.Context) (*model.Cart, error) {
	return r.cart(), nil
}

func (r *Resolver) cart() *model.Cart {
	return MapCartToGraphQL(r.App.CartView())
}

// AddToCart adds one unit and returns the resulting line.
func (r *mutationResolver) AddToCart(ctx context.Context, productID string, size *string) (*model.CartLine, error) {
	log := logger.FromCtx(ctx).With(zap.String("product_id", productID))

	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}

	var selected string
	if size != nil {
		selected = *size
	}
	line, err := r.App.AddToCart(id, selected)
	if err != nil {
		log.Debug("add to cart rejected", zap.Error(err))
		return nil, err
	}
	return MapCartLineToGraphQL(line), nil
}

func (r *mutationResolver) RemoveFromCart(ctx context.Context, cartItemID string) (*model.Cart, error) {
	r.App.RemoveFromCart(cartItemID)
	return r.cart(), nil
}

func (r *mutationResolver) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) (*model.Cart, error) {
	r.App.UpdateQuantity(cartItemID, quantity)
	return r.cart(), nil
}

func (r *mutationResolver) ClearCart(ctx context.Context) (*model.Cart, error) {
	r.App.ClearCart()
	return r.cart(), nil
}
