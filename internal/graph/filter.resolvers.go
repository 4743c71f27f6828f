package graph

import (
	"context"

	"storefront-be/internal/graph/model"
)

// Filters is the resolver for the filters field.
func (r *queryResolver) Filters(ctx context.Context) (*model.Filters, error) {
	return r.filters(), nil
}

func (r *Resolver) filters() *model.Filters {
	return MapFiltersToGraphQL(r.App.Criteria())
}

func (r *mutationResolver) SetSearchQuery(ctx context.Context, query string) (*model.Filters, error) {
	r.App.SetSearchQuery(query)
	return r.filters(), nil
}

func (r *mutationResolver) ToggleBrand(ctx context.Context, brand string) (*model.Filters, error) {
	r.App.ToggleBrand(brand)
	return r.filters(), nil
}

func (r *mutationResolver) ToggleCategory(ctx context.Context, category string) (*model.Filters, error) {
	r.App.ToggleCategory(category)
	return r.filters(), nil
}

func (r *mutationResolver) ToggleSize(ctx context.Context, size string) (*model.Filters, error) {
	r.App.ToggleSize(size)
	return r.filters(), nil
}

func (r *mutationResolver) SetPriceRange(ctx context.Context, min, max int64) (*model.Filters, error) {
	if min < 0 || max < 0 || min > max {
		return nil, ErrInvalidPriceRange
	}
	r.App.SetPriceRange(min, max)
	return r.filters(), nil
}

// MovePriceMin drags the lower slider handle; the app keeps it below the
// upper one.
func (r *mutationResolver) MovePriceMin(ctx context.Context, value int64) (*model.Filters, error) {
	r.App.MovePriceMin(value)
	return r.filters(), nil
}

func (r *mutationResolver) MovePriceMax(ctx context.Context, value int64) (*model.Filters, error) {
	r.App.MovePriceMax(value)
	return r.filters(), nil
}

func (r *mutationResolver) SetMinRating(ctx context.Context, rating *float64) (*model.Filters, error) {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return nil, ErrInvalidRating
	}
	r.App.SetMinRating(rating)
	return r.filters(), nil
}

func (r *mutationResolver) SetSortBy(ctx context.Context, sortBy string) (*model.Filters, error) {
	if err := r.App.SetSortBy(sortBy); err != nil {
		return nil, err
	}
	return r.filters(), nil
}

func (r *mutationResolver) ResetFilters(ctx context.Context) (*model.Filters, error) {
	r.App.ResetFilters()
	return r.filters(), nil
}
