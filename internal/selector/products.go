package selector

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"storefront-be/internal/filter"
	"storefront-be/internal/product"
)

// Predicate names returned by Rejections.
const (
	RuleSearch   = "search"
	RuleBrand    = "brand"
	RuleCategory = "category"
	RulePrice    = "price"
	RuleRating   = "rating"
	RuleSize     = "size"
)

// FilterProducts returns the products matching c, ordered by c.SortBy.
// The input slice is never reordered.
func FilterProducts(products []product.Product, c filter.Criteria) []product.Product {
	q := strings.ToLower(c.SearchQuery)

	result := make([]product.Product, 0, len(products))
	for _, p := range products {
		if len(rejections(p, c, q, true)) == 0 {
			result = append(result, p)
		}
	}

	sortProducts(result, c.SortBy)
	return result
}

// Matches reports whether p passes every predicate in c.
func Matches(p product.Product, c filter.Criteria) bool {
	return len(rejections(p, c, strings.ToLower(c.SearchQuery), true)) == 0
}

// Rejections lists every predicate p violates under c.
func Rejections(p product.Product, c filter.Criteria) []string {
	return rejections(p, c, strings.ToLower(c.SearchQuery), false)
}

func rejections(p product.Product, c filter.Criteria, query string, firstOnly bool) []string {
	var failed []string
	fail := func(rule string) bool {
		failed = append(failed, rule)
		return firstOnly
	}

	if query != "" &&
		!strings.Contains(strings.ToLower(p.Name), query) &&
		!strings.Contains(strings.ToLower(p.Description), query) {
		if fail(RuleSearch) {
			return failed
		}
	}

	if len(c.Brands) > 0 && !slices.Contains(c.Brands, p.Brand) {
		if fail(RuleBrand) {
			return failed
		}
	}

	if len(c.Categories) > 0 && !slices.ContainsFunc(p.Category, func(tag string) bool {
		return slices.Contains(c.Categories, tag)
	}) {
		if fail(RuleCategory) {
			return failed
		}
	}

	if !c.PriceRange.Contains(p.Price) {
		if fail(RulePrice) {
			return failed
		}
	}

	if c.MinRating != nil && p.Rating < *c.MinRating {
		if fail(RuleRating) {
			return failed
		}
	}

	if len(c.Sizes) > 0 && !slices.ContainsFunc(c.Sizes, p.InStock) {
		fail(RuleSize)
	}

	return failed
}

// sortProducts is stable so ties keep catalog order.
func sortProducts(products []product.Product, by filter.SortOption) {
	var compare func(a, b product.Product) int

	switch by {
	case filter.SortPriceAsc:
		compare = func(a, b product.Product) int { return cmp.Compare(a.Price, b.Price) }
	case filter.SortPriceDesc:
		compare = func(a, b product.Product) int { return cmp.Compare(b.Price, a.Price) }
	case filter.SortRatingDesc:
		compare = func(a, b product.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return
	}

	slices.SortStableFunc(products, compare)
}

// FeaturedProducts returns the featured products in catalog order.
func FeaturedProducts(products []product.Product) []product.Product {
	featured := make([]product.Product, 0)
	for _, p := range products {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured
}

// UniqueBrands returns every brand in the catalog, deduplicated and sorted.
func UniqueBrands(products []product.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		seen[p.Brand] = struct{}{}
	}
	return sortedKeys(seen, strings.Compare)
}

// UniqueCategories returns every category tag, deduplicated and sorted.
func UniqueCategories(products []product.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, tag := range p.Category {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen, strings.Compare)
}

// UniqueSizes returns every size label found in stock, including sizes with
// zero units.
func UniqueSizes(products []product.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for size := range p.Stock {
			seen[size] = struct{}{}
		}
	}
	return sortedKeys(seen, compareSizes)
}

// compareSizes orders numeric labels by value and puts them before
// non-numeric labels, which compare as strings. Unlike a pairwise
// numeric-or-string comparison this is a total order, so mixed sets sort
// deterministically.
func compareSizes(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)

	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func sortedKeys(set map[string]struct{}, compare func(a, b string) int) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compare)
	return keys
}
