package selector

import (
	"sync"

	"storefront-be/internal/catalog"
	"storefront-be/internal/filter"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"storefront-be/internal/state"
)

type Facets struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
}

// ProductView memoizes the filtered product list and the catalog facets.
// Results are recomputed only when the catalog or criteria version moves,
// and are shared between callers, so they must not be modified.
type ProductView struct {
	mu sync.Mutex

	filtered        []product.Product
	filteredCatalog uint64
	filteredFilter  uint64
	hasFiltered     bool

	facets        Facets
	facetsCatalog uint64
	hasFacets     bool

	Recomputes      metrics.Counter
	FacetRecomputes metrics.Counter
}

func NewProductView() *ProductView {
	return &ProductView{}
}

func (v *ProductView) Filtered(cat state.Snapshot[catalog.State], crit state.Snapshot[filter.Criteria]) []product.Product {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.hasFiltered && v.filteredCatalog == cat.Version && v.filteredFilter == crit.Version {
		return v.filtered
	}

	v.filtered = FilterProducts(cat.State.Items, crit.State)
	v.filteredCatalog = cat.Version
	v.filteredFilter = crit.Version
	v.hasFiltered = true
	v.Recomputes.Inc()
	return v.filtered
}

func (v *ProductView) Facets(cat state.Snapshot[catalog.State]) Facets {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.hasFacets && v.facetsCatalog == cat.Version {
		return v.facets
	}

	v.facets = Facets{
		Brands:     UniqueBrands(cat.State.Items),
		Categories: UniqueCategories(cat.State.Items),
		Sizes:      UniqueSizes(cat.State.Items),
	}
	v.facetsCatalog = cat.Version
	v.hasFacets = true
	v.FacetRecomputes.Inc()
	return v.facets
}
