package graph

import (
	"context"

	"storefront-be/internal/graph/model"
)

// rootFields binds every Query and Mutation field to its resolver.
func rootFields(r *Resolver) map[string]fieldFunc {
	q, m := r.Query(), r.Mutation()

	noArgs := func(fn func(context.Context) (any, error)) fieldFunc {
		return func(ctx context.Context, _ arguments) (any, error) { return fn(ctx) }
	}
	stringArg := func(name string, fn func(context.Context, string) (any, error)) fieldFunc {
		return func(ctx context.Context, args arguments) (any, error) {
			v, err := args.String(name)
			if err != nil {
				return nil, err
			}
			return fn(ctx, v)
		}
	}
	intArg := func(name string, fn func(context.Context, int64) (any, error)) fieldFunc {
		return func(ctx context.Context, args arguments) (any, error) {
			v, err := args.Int64(name)
			if err != nil {
				return nil, err
			}
			return fn(ctx, v)
		}
	}

	return map[string]fieldFunc{
		"Query.products": noArgs(func(ctx context.Context) (any, error) { return q.Products(ctx) }),
		"Query.featuredProducts": noArgs(func(ctx context.Context) (any, error) {
			return q.FeaturedProducts(ctx)
		}),
		"Query.product": stringArg("id", func(ctx context.Context, id string) (any, error) {
			return q.Product(ctx, id)
		}),
		"Query.facets":        noArgs(func(ctx context.Context) (any, error) { return q.Facets(ctx) }),
		"Query.catalog":       noArgs(func(ctx context.Context) (any, error) { return q.Catalog(ctx) }),
		"Query.filters":       noArgs(func(ctx context.Context) (any, error) { return q.Filters(ctx) }),
		"Query.cart":          noArgs(func(ctx context.Context) (any, error) { return q.Cart(ctx) }),
		"Query.notifications": noArgs(func(ctx context.Context) (any, error) { return q.Notifications(ctx) }),

		"Mutation.loadCatalog": func(ctx context.Context, args arguments) (any, error) {
			return m.LoadCatalog(ctx, args.Bool("refresh"))
		},
		"Mutation.cancelCatalogLoad": noArgs(func(ctx context.Context) (any, error) {
			return m.CancelCatalogLoad(ctx)
		}),

		"Mutation.setSearchQuery": stringArg("query", func(ctx context.Context, v string) (any, error) {
			return m.SetSearchQuery(ctx, v)
		}),
		"Mutation.toggleBrand": stringArg("brand", func(ctx context.Context, v string) (any, error) {
			return m.ToggleBrand(ctx, v)
		}),
		"Mutation.toggleCategory": stringArg("category", func(ctx context.Context, v string) (any, error) {
			return m.ToggleCategory(ctx, v)
		}),
		"Mutation.toggleSize": stringArg("size", func(ctx context.Context, v string) (any, error) {
			return m.ToggleSize(ctx, v)
		}),
		"Mutation.setPriceRange": func(ctx context.Context, args arguments) (any, error) {
			lo, err := args.Int64("min")
			if err != nil {
				return nil, err
			}
			hi, err := args.Int64("max")
			if err != nil {
				return nil, err
			}
			return m.SetPriceRange(ctx, lo, hi)
		},
		"Mutation.movePriceMin": intArg("value", func(ctx context.Context, v int64) (any, error) {
			return m.MovePriceMin(ctx, v)
		}),
		"Mutation.movePriceMax": intArg("value", func(ctx context.Context, v int64) (any, error) {
			return m.MovePriceMax(ctx, v)
		}),
		"Mutation.setMinRating": func(ctx context.Context, args arguments) (any, error) {
			rating, err := args.OptionalFloat("rating")
			if err != nil {
				return nil, err
			}
			return m.SetMinRating(ctx, rating)
		},
		"Mutation.setSortBy": stringArg("sortBy", func(ctx context.Context, v string) (any, error) {
			return m.SetSortBy(ctx, v)
		}),
		"Mutation.resetFilters": noArgs(func(ctx context.Context) (any, error) { return m.ResetFilters(ctx) }),

		"Mutation.addToCart": func(ctx context.Context, args arguments) (any, error) {
			id, err := args.String("productId")
			if err != nil {
				return nil, err
			}
			size, err := args.OptionalString("size")
			if err != nil {
				return nil, err
			}
			return m.AddToCart(ctx, id, size)
		},
		"Mutation.removeFromCart": stringArg("cartItemId", func(ctx context.Context, v string) (any, error) {
			return m.RemoveFromCart(ctx, v)
		}),
		"Mutation.updateQuantity": func(ctx context.Context, args arguments) (any, error) {
			id, err := args.String("cartItemId")
			if err != nil {
				return nil, err
			}
			qty, err := args.Int("quantity")
			if err != nil {
				return nil, err
			}
			return m.UpdateQuantity(ctx, id, qty)
		},
		"Mutation.clearCart": noArgs(func(ctx context.Context) (any, error) { return m.ClearCart(ctx) }),

		"Mutation.addNotification": func(ctx context.Context, args arguments) (any, error) {
			input, err := notificationInput(args)
			if err != nil {
				return nil, err
			}
			return m.AddNotification(ctx, input)
		},
		"Mutation.dismissNotification": stringArg("id", func(ctx context.Context, v string) (any, error) {
			return m.DismissNotification(ctx, v)
		}),
	}
}

func notificationInput(args arguments) (model.NotificationInput, error) {
	obj, err := args.Object("input")
	if err != nil {
		return model.NotificationInput{}, err
	}

	var in model.NotificationInput
	if in.Message, err = obj.String("message"); err != nil {
		return in, err
	}
	if in.ID, err = obj.OptionalString("id"); err != nil {
		return in, err
	}
	if in.Type, err = obj.OptionalString("type"); err != nil {
		return in, err
	}
	if in.Duration, err = obj.OptionalInt64("duration"); err != nil {
		return in, err
	}
	return in, nil
}
