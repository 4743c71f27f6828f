package filter

import "storefront-be/internal/state"

// Store holds the user's current filter and sort selection.
type Store struct {
	state *state.Store[Criteria, Action]
}

func NewStore() *Store {
	return &Store{
		state: state.New(Default(), Reduce,
			state.WithEqual[Criteria, Action](Criteria.Equal)),
	}
}

// Dispatch applies a and reports whether the criteria changed.
func (s *Store) Dispatch(a Action) bool {
	return s.state.Dispatch(a)
}

func (s *Store) Snapshot() state.Snapshot[Criteria] {
	return s.state.Snapshot()
}

func (s *Store) Subscribe(l state.Listener[Criteria]) func() {
	return s.state.Subscribe(l)
}

func (s *Store) SetSearchQuery(query string) {
	s.Dispatch(SetSearchQuery{Query: query})
}

func (s *Store) ToggleBrand(brand string) {
	s.Dispatch(ToggleBrand{Brand: brand})
}

func (s *Store) ToggleCategory(category string) {
	s.Dispatch(ToggleCategory{Category: category})
}

func (s *Store) ToggleSize(size string) {
	s.Dispatch(ToggleSize{Size: size})
}

func (s *Store) SetPriceRange(min, max int64) {
	s.Dispatch(SetPriceRange{Range: PriceRange{Min: min, Max: max}})
}

// SetMinRating selects rating, or clears it if it is already selected.
// A nil rating clears unconditionally.
func (s *Store) SetMinRating(rating *float64) {
	s.Dispatch(SetMinRating{Rating: rating})
}

func (s *Store) SetSortBy(option SortOption) {
	s.Dispatch(SetSortBy{Option: option})
}

func (s *Store) ResetFilters() {
	s.Dispatch(ResetFilters{})
}
