package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

// Products is the resolver for the products field.
func (r *queryResolver) Products(ctx context.Context) (*model.ProductListing, error) {
	return MapListingToGraphQL(r.App.Products()), nil
}

// FeaturedProducts is the resolver for the featuredProducts field.
func (r *queryResolver) FeaturedProducts(ctx context.Context) ([]*model.Product, error) {
	return MapProductsToGraphQL(r.App.Featured()), nil
}

// Product is the resolver for the product field.
func (r *queryResolver) Product(ctx context.Context, id string) (*model.Product, error) {
	productID, err := parseProductID(id)
	if err != nil {
		return nil, err
	}
	p, err := r.App.Product(productID)
	if err != nil {
		return nil, err
	}
	return MapProductToGraphQL(p), nil
}

// Facets is the resolver for the facets field.
func (r *queryResolver) Facets(ctx context.Context) (*model.Facets, error) {
	return MapFacetsToGraphQL(r.App.Facets()), nil
}

// Catalog is the resolver for the catalog field.
func (r *queryResolver) Catalog(ctx context.Context) (*model.CatalogStatus, error) {
	return MapCatalogToGraphQL(r.App.CatalogState()), nil
}

// LoadCatalog starts a load, or a reload when refresh is set, and waits
// for it to settle.
func (r *mutationResolver) LoadCatalog(ctx context.Context, refresh bool) (*model.CatalogStatus, error) {
	var done <-chan struct{}
	if refresh {
		done = r.App.ReloadCatalog()
	} else {
		done = r.App.LoadCatalog()
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return MapCatalogToGraphQL(r.App.CatalogState()), nil
}

// CancelCatalogLoad is the resolver for the cancelCatalogLoad field.
func (r *mutationResolver) CancelCatalogLoad(ctx context.Context) (bool, error) {
	cancelled := r.App.CancelCatalogLoad()
	logger.FromCtx(ctx).Debug("catalog cancel requested", zap.Bool("cancelled", cancelled))
	return cancelled, nil
}
