package transport

import "errors"

var (
	errInvalidPriceRange = errors.New("min price must not exceed max price")
	errMissingPrice      = errors.New("min or max price is required")
)
