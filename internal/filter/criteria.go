package filter

import (
	"fmt"
	"slices"
	"strings"
)

type SortOption string

const (
	SortNone       SortOption = ""
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
	SortRatingDesc SortOption = "rating-desc"
)

// ParseSortOption accepts the wire names plus "none" and "featured" for SortNone.
func ParseSortOption(s string) (SortOption, error) {
	switch o := SortOption(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return o, nil
	case "none", "featured":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortOption, s)
	}
}

// Price slider bounds, in the smallest currency unit.
const (
	MinPrice  int64 = 0
	MaxPrice  int64 = 20000
	PriceStep int64 = 500
)

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price lies within the inclusive range.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

type Criteria struct {
	SearchQuery string     `json:"searchQuery"`
	Brands      []string   `json:"brands"`
	Categories  []string   `json:"categories"`
	Sizes       []string   `json:"sizes"`
	MinRating   *float64   `json:"minRating"`
	PriceRange  PriceRange `json:"priceRange"`
	SortBy      SortOption `json:"sortBy"`
}

// Default returns the criteria that let every product through unsorted.
func Default() Criteria {
	return Criteria{
		Brands:     []string{},
		Categories: []string{},
		Sizes:      []string{},
		PriceRange: PriceRange{Min: MinPrice, Max: MaxPrice},
	}
}

func (c Criteria) Equal(o Criteria) bool {
	if c.SearchQuery != o.SearchQuery || c.PriceRange != o.PriceRange || c.SortBy != o.SortBy {
		return false
	}
	if (c.MinRating == nil) != (o.MinRating == nil) {
		return false
	}
	if c.MinRating != nil && *c.MinRating != *o.MinRating {
		return false
	}
	return slices.Equal(c.Brands, o.Brands) &&
		slices.Equal(c.Categories, o.Categories) &&
		slices.Equal(c.Sizes, o.Sizes)
}

func (c Criteria) IsDefault() bool {
	return c.Equal(Default())
}

// ClampMin moves the lower bound to value, keeping it at least one step
// below the current upper bound.
func ClampMin(current PriceRange, value int64) PriceRange {
	value = min(value, current.Max-PriceStep)
	value = max(value, MinPrice)
	return PriceRange{Min: value, Max: current.Max}
}

// ClampMax moves the upper bound to value, keeping it at least one step
// above the current lower bound.
func ClampMax(current PriceRange, value int64) PriceRange {
	value = max(value, current.Min+PriceStep)
	value = min(value, MaxPrice)
	return PriceRange{Min: current.Min, Max: value}
}
