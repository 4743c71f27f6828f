// Package model holds the GraphQL-facing shapes. JSON names match the
// field names in schema.graphqls.
package model

type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Rating      float64     `json:"rating"`
	Category    []string    `json:"category"`
	MainImage   string      `json:"mainImage"`
	Images      []string    `json:"images"`
	Stock       []SizeStock `json:"stock"`
	IsFeatured  bool        `json:"isFeatured"`
}

type SizeStock struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type ProductListing struct {
	Items []*Product `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
}

type Facets struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
}

type CatalogStatus struct {
	Status     string  `json:"status"`
	Error      *string `json:"error"`
	Aborted    bool    `json:"aborted"`
	Generation uint64  `json:"generation"`
	Count      int     `json:"count"`
}

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type Filters struct {
	SearchQuery string     `json:"searchQuery"`
	Brands      []string   `json:"brands"`
	Categories  []string   `json:"categories"`
	Sizes       []string   `json:"sizes"`
	MinRating   *float64   `json:"minRating"`
	PriceRange  PriceRange `json:"priceRange"`
	SortBy      string     `json:"sortBy"`
}

type CartLine struct {
	CartItemID   string   `json:"cartItemId"`
	Product      *Product `json:"product"`
	SelectedSize string   `json:"selectedSize"`
	Quantity     int      `json:"quantity"`
}

type OrderSummary struct {
	Items    int   `json:"items"`
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type Cart struct {
	Items      []*CartLine  `json:"items"`
	TotalItems int          `json:"totalItems"`
	TotalPrice int64        `json:"totalPrice"`
	Summary    OrderSummary `json:"summary"`
}

type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Duration  int64  `json:"duration"`
	CreatedAt string `json:"createdAt"`
	Exiting   bool   `json:"exiting"`
}

type NotificationInput struct {
	ID       *string
	Message  string
	Type     *string
	Duration *int64
}
