package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-be/internal/state"
)

func TestStore_Operations(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Snapshot().State.IsDefault())

	s.SetSearchQuery("trail")
	s.ToggleBrand("Salomon")
	s.ToggleCategory("Outdoor")
	s.ToggleSize("9")
	s.SetPriceRange(1000, 15000)
	s.SetMinRating(rating(4))
	s.SetSortBy(SortRatingDesc)

	c := s.Snapshot().State
	assert.Equal(t, "trail", c.SearchQuery)
	assert.Equal(t, []string{"Salomon"}, c.Brands)
	assert.Equal(t, []string{"Outdoor"}, c.Categories)
	assert.Equal(t, []string{"9"}, c.Sizes)
	assert.Equal(t, PriceRange{Min: 1000, Max: 15000}, c.PriceRange)
	assert.Equal(t, 4.0, *c.MinRating)
	assert.Equal(t, SortRatingDesc, c.SortBy)

	s.ResetFilters()
	assert.Equal(t, Default(), s.Snapshot().State)
}

func TestStore_MinRatingToggleOff(t *testing.T) {
	s := NewStore()

	s.SetMinRating(rating(4))
	s.SetMinRating(rating(4))

	assert.Nil(t, s.Snapshot().State.MinRating)
}

func TestStore_VersionOnlyMovesOnChange(t *testing.T) {
	s := NewStore()

	var notified []uint64
	s.Subscribe(func(snap state.Snapshot[Criteria]) {
		notified = append(notified, snap.Version)
	})

	s.SetSearchQuery("")
	s.ResetFilters()
	assert.Equal(t, uint64(0), s.Snapshot().Version)

	s.SetSearchQuery("gel")
	s.SetSearchQuery("gel")
	assert.Equal(t, uint64(1), s.Snapshot().Version)

	s.SetSortBy(SortPriceAsc)
	assert.Equal(t, []uint64{1, 2}, notified)
}
