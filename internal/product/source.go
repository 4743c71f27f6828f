package product

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

// Source supplies the ordered, read-only product list.
type Source interface {
	List(ctx context.Context) ([]Product, error)
}

//go:embed data/products.json
var bundledProducts []byte

// FixtureSource serves products decoded from a static JSON document.
type FixtureSource struct {
	raw []byte
}

// NewFixtureSource returns a source over the bundled catalog.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{raw: bundledProducts}
}

// NewFixtureSourceFrom returns a source over raw, a JSON array of products.
func NewFixtureSourceFrom(raw []byte) *FixtureSource {
	return &FixtureSource{raw: raw}
}

// List decodes the fixture on every call so callers never share slices.
func (f *FixtureSource) List(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var products []Product
	dec := json.NewDecoder(bytes.NewReader(f.raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFixtureDecode, err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
