package product

import "maps"

// Stock maps a size label to the number of units available in that size.
type Stock map[string]int

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Rating      float64  `json:"rating"`
	Category    []string `json:"category"`
	MainImage   string   `json:"mainImage"`
	Images      []string `json:"images"`
	Stock       Stock    `json:"stock"`
	IsFeatured  bool     `json:"isFeatured"`
}

// Clone returns a deep copy, so later edits to p never reach the copy.
func (p Product) Clone() Product {
	c := p
	if p.Category != nil {
		c.Category = append([]string(nil), p.Category...)
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.Stock != nil {
		c.Stock = maps.Clone(p.Stock)
	}
	return c
}

// Sizes returns the product's size labels in no particular order.
func (p Product) Sizes() []string {
	sizes := make([]string, 0, len(p.Stock))
	for size := range p.Stock {
		sizes = append(sizes, size)
	}
	return sizes
}

func (p Product) HasSizes() bool {
	return len(p.Stock) > 0
}

// InStock reports whether size has at least one unit.
func (p Product) InStock(size string) bool {
	return p.Stock[size] > 0
}
