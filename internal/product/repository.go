package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Source
	GetByID(ctx context.Context, id int) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id,
	name,
	brand,
	description,
	price,
	rating,
	category,
	main_image,
	images,
	stock,
	is_featured`

// List returns every product in catalog order.
func (r *repository) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT`+productColumns+`
	FROM products
	ORDER BY position, id`)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProducts, err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProducts, err)
	}

	log.Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}

// GetByID returns nil, nil when no product has the given id.
func (r *repository) GetByID(ctx context.Context, id int) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+productColumns+`
	FROM products
	WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (Product, error) {
	var (
		p        Product
		stockRaw []byte
	)
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.Price,
		&p.Rating,
		pq.Array(&p.Category),
		&p.MainImage,
		pq.Array(&p.Images),
		&stockRaw,
		&p.IsFeatured,
	)
	if err == sql.ErrNoRows {
		return Product{}, err
	}
	if err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrFailedScanProduct, err)
	}

	p.Stock = Stock{}
	if len(stockRaw) > 0 {
		if err := json.Unmarshal(stockRaw, &p.Stock); err != nil {
			return Product{}, fmt.Errorf("%w: product %d: %v", ErrInvalidStockColumn, p.ID, err)
		}
	}
	return p, nil
}
