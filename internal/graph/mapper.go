package graph

import (
	"slices"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/filter"
	"storefront-be/internal/graph/model"
	"storefront-be/internal/notification"
	"storefront-be/internal/product"
	"storefront-be/internal/selector"
	"storefront-be/internal/storefront"
)

func MapProductToGraphQL(p product.Product) *model.Product {
	stock := make([]model.SizeStock, 0, len(p.Stock))
	for _, size := range selector.UniqueSizes([]product.Product{p}) {
		stock = append(stock, model.SizeStock{Size: size, Quantity: p.Stock[size]})
	}

	return &model.Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		Rating:      p.Rating,
		Category:    orEmpty(p.Category),
		MainImage:   p.MainImage,
		Images:      orEmpty(p.Images),
		Stock:       stock,
		IsFeatured:  p.IsFeatured,
	}
}

func MapProductsToGraphQL(items []product.Product) []*model.Product {
	out := make([]*model.Product, 0, len(items))
	for _, p := range items {
		out = append(out, MapProductToGraphQL(p))
	}
	return out
}

func MapListingToGraphQL(l storefront.Listing) *model.ProductListing {
	return &model.ProductListing{
		Items: MapProductsToGraphQL(l.Items),
		Count: l.Count,
		Total: l.Total,
	}
}

func MapFacetsToGraphQL(f selector.Facets) *model.Facets {
	return &model.Facets{
		Brands:     orEmpty(f.Brands),
		Categories: orEmpty(f.Categories),
		Sizes:      orEmpty(f.Sizes),
	}
}

func MapCatalogToGraphQL(st catalog.State) *model.CatalogStatus {
	out := &model.CatalogStatus{
		Status:     string(st.Status),
		Aborted:    st.Aborted(),
		Generation: st.Generation,
		Count:      len(st.Items),
	}
	if st.Error != "" {
		out.Error = &st.Error
	}
	return out
}

func MapFiltersToGraphQL(c filter.Criteria) *model.Filters {
	return &model.Filters{
		SearchQuery: c.SearchQuery,
		Brands:      orEmpty(c.Brands),
		Categories:  orEmpty(c.Categories),
		Sizes:       orEmpty(c.Sizes),
		MinRating:   c.MinRating,
		PriceRange:  model.PriceRange{Min: c.PriceRange.Min, Max: c.PriceRange.Max},
		SortBy:      string(c.SortBy),
	}
}

func MapCartLineToGraphQL(l cart.Line) *model.CartLine {
	return &model.CartLine{
		CartItemID:   l.CartItemID,
		Product:      MapProductToGraphQL(l.Product),
		SelectedSize: l.SelectedSize,
		Quantity:     l.Quantity,
	}
}

func MapCartToGraphQL(v storefront.CartView) *model.Cart {
	items := make([]*model.CartLine, 0, len(v.Items))
	for _, l := range v.Items {
		items = append(items, MapCartLineToGraphQL(l))
	}
	return &model.Cart{
		Items:      items,
		TotalItems: v.TotalItems,
		TotalPrice: v.TotalPrice,
		Summary: model.OrderSummary{
			Items:    v.Summary.Items,
			Subtotal: v.Summary.Subtotal,
			Shipping: v.Summary.Shipping,
			Tax:      v.Summary.Tax,
			Total:    v.Summary.Total,
		},
	}
}

func MapNotificationToGraphQL(n notification.Notification, exiting bool) *model.Notification {
	return &model.Notification{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Duration:  n.Duration.Milliseconds(),
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		Exiting:   exiting,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
