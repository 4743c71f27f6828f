package cart

import "errors"

var (
	// -- Storage --
	ErrDecodeCart = errors.New("failed to decode stored cart")
	ErrEncodeCart = errors.New("failed to encode cart")
	ErrLoadCart   = errors.New("failed to load cart")
	ErrSaveCart   = errors.New("failed to save cart")
)
