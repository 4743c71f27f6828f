package product

import "errors"

var (
	// -- Fixture --
	ErrFixtureDecode = errors.New("failed to decode product fixture")

	// -- Database & Operation Failures --
	ErrFailedGetProducts  = errors.New("failed to get products")
	ErrFailedScanProduct  = errors.New("failed to scan product row")
	ErrInvalidStockColumn = errors.New("invalid stock column")
)
