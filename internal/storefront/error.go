package storefront

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSizeRequired    = errors.New("please select a size")
	ErrSizeUnavailable = errors.New("size is out of stock")
)
