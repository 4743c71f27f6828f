package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// undefined_table
const pqUndefinedTable = "42P01"

// Postgres stores values in the kv_store table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	if db == nil {
		return nil, ErrNilClient
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `
	SELECT value
	FROM kv_store
	WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, p.wrap(ctx, ErrLoadFailed, key, err)
	}
	return value, nil
}

func (p *Postgres) Save(ctx context.Context, key string, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at`, key, data)
	if err != nil {
		return p.wrap(ctx, ErrSaveFailed, key, err)
	}
	return nil
}

func (p *Postgres) wrap(ctx context.Context, op error, key string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable {
		logger.FromCtx(ctx).Error("kv_store missing", zap.String("key", key))
		return fmt.Errorf("%w %q: %w", op, key, ErrMissingTable)
	}
	return fmt.Errorf("%w %q: %v", op, key, err)
}
