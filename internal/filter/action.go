package filter

import "slices"

// Action is one of the criteria mutations below.
type Action interface {
	filterAction()
}

type SetSearchQuery struct{ Query string }

type ToggleBrand struct{ Brand string }

type ToggleCategory struct{ Category string }

type ToggleSize struct{ Size string }

// SetPriceRange replaces the range as given; callers clamp beforehand.
type SetPriceRange struct{ Range PriceRange }

// SetMinRating selects a minimum rating. Selecting the active rating again
// clears it.
type SetMinRating struct{ Rating *float64 }

type SetSortBy struct{ Option SortOption }

type ResetFilters struct{}

func (SetSearchQuery) filterAction() {}
func (ToggleBrand) filterAction()    {}
func (ToggleCategory) filterAction() {}
func (ToggleSize) filterAction()     {}
func (SetPriceRange) filterAction()  {}
func (SetMinRating) filterAction()   {}
func (SetSortBy) filterAction()      {}
func (ResetFilters) filterAction()   {}

// Reduce returns the criteria after applying a. prev is never modified.
func Reduce(prev Criteria, a Action) Criteria {
	next := prev

	switch a := a.(type) {
	case SetSearchQuery:
		next.SearchQuery = a.Query
	case ToggleBrand:
		next.Brands = toggle(prev.Brands, a.Brand)
	case ToggleCategory:
		next.Categories = toggle(prev.Categories, a.Category)
	case ToggleSize:
		next.Sizes = toggle(prev.Sizes, a.Size)
	case SetPriceRange:
		next.PriceRange = a.Range
	case SetMinRating:
		next.MinRating = toggleRating(prev.MinRating, a.Rating)
	case SetSortBy:
		next.SortBy = a.Option
	case ResetFilters:
		next = Default()
	}

	return next
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	out := make([]string, len(set), len(set)+1)
	copy(out, set)
	return append(out, v)
}

func toggleRating(current, selected *float64) *float64 {
	if selected == nil {
		return nil
	}
	if current != nil && *current == *selected {
		return nil
	}
	v := *selected
	return &v
}
