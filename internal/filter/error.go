package filter

import "errors"

var (
	ErrUnknownSortOption = errors.New("unknown sort option")
)
