package storage

import "errors"

var (
	ErrNilClient    = errors.New("storage client must be non-nil")
	ErrLoadFailed   = errors.New("failed to load key")
	ErrSaveFailed   = errors.New("failed to save key")
	ErrMissingTable = errors.New("kv_store table does not exist, run migrations")
)
