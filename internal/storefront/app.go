// Package storefront is the event surface the UI talks to. Each method maps
// to one user operation; operations that touch several stores issue their
// mutations one after another.
package storefront

import (
	"context"
	"fmt"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/filter"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/product"
	"storefront-be/internal/selector"

	"go.uber.org/zap"
)

type App struct {
	ctx context.Context
	log *zap.Logger
	now func() time.Time

	Catalog       *catalog.Store
	Filters       *filter.Store
	Cart          *cart.Store
	Notifications *notification.Store

	dismisser *notification.Dismisser
	view      *selector.ProductView
}

type config struct {
	catalogOpts   []catalog.Option
	cartOpts      []cart.Option
	dismisserOpts []notification.DismisserOption
	now           func() time.Time
	log           *zap.Logger
}

type Option func(*config)

func WithCatalogOptions(opts ...catalog.Option) Option {
	return func(c *config) {
		c.catalogOpts = append(c.catalogOpts, opts...)
	}
}

func WithCartOptions(opts ...cart.Option) Option {
	return func(c *config) {
		c.cartOpts = append(c.cartOpts, opts...)
	}
}

func WithDismisserOptions(opts ...notification.DismisserOption) Option {
	return func(c *config) {
		c.dismisserOpts = append(c.dismisserOpts, opts...)
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// New wires the stores together. ctx bounds catalog loads started through
// the app and is used to restore the cart from storage.
func New(ctx context.Context, source product.Source, storage cart.Storage, opts ...Option) *App {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Named("storefront")
	}

	notifications := notification.NewStore()
	return &App{
		ctx:           ctx,
		log:           cfg.log,
		now:           cfg.now,
		Catalog:       catalog.NewStore(source, cfg.catalogOpts...),
		Filters:       filter.NewStore(),
		Cart:          cart.NewStore(ctx, storage, cfg.cartOpts...),
		Notifications: notifications,
		dismisser:     notification.NewDismisser(notifications, cfg.dismisserOpts...),
		view:          selector.NewProductView(),
	}
}

// Close cancels any catalog load and stops notification timers.
func (a *App) Close() {
	a.Catalog.Cancel()
	a.dismisser.Stop()
}

// -- Catalog --

func (a *App) LoadCatalog() <-chan struct{} {
	return a.Catalog.Load(a.ctx)
}

func (a *App) ReloadCatalog() <-chan struct{} {
	return a.Catalog.Reload(a.ctx)
}

func (a *App) CancelCatalogLoad() bool {
	return a.Catalog.Cancel()
}

func (a *App) CatalogState() catalog.State {
	return a.Catalog.Snapshot().State
}

// Listing is the product grid: the filtered products plus how many the
// catalog holds in total.
type Listing struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
	Total int               `json:"total"`
}

func (a *App) Products() Listing {
	cat := a.Catalog.Snapshot()
	items := a.view.Filtered(cat, a.Filters.Snapshot())
	return Listing{Items: items, Count: len(items), Total: len(cat.State.Items)}
}

func (a *App) Featured() []product.Product {
	return selector.FeaturedProducts(a.CatalogState().Items)
}

func (a *App) Product(id int) (product.Product, error) {
	p, ok := a.CatalogState().Product(id)
	if !ok {
		return product.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

func (a *App) Facets() selector.Facets {
	return a.view.Facets(a.Catalog.Snapshot())
}

// ProductViewStats reports how often the memoized views were recomputed.
func (a *App) ProductViewStats() (filtered, facets uint64) {
	return a.view.Recomputes.Load(), a.view.FacetRecomputes.Load()
}

// -- Filters --

func (a *App) Criteria() filter.Criteria {
	return a.Filters.Snapshot().State
}

func (a *App) SetSearchQuery(query string) {
	a.Filters.SetSearchQuery(query)
}

func (a *App) ToggleBrand(brand string) {
	a.Filters.ToggleBrand(brand)
}

func (a *App) ToggleCategory(category string) {
	a.Filters.ToggleCategory(category)
}

func (a *App) ToggleSize(size string) {
	a.Filters.ToggleSize(size)
}

func (a *App) SetPriceRange(min, max int64) {
	a.Filters.SetPriceRange(min, max)
}

// MovePriceMin drags the lower price handle to value, kept at least one
// step below the upper handle.
func (a *App) MovePriceMin(value int64) {
	r := filter.ClampMin(a.Criteria().PriceRange, value)
	a.Filters.SetPriceRange(r.Min, r.Max)
}

// MovePriceMax is MovePriceMin for the upper handle.
func (a *App) MovePriceMax(value int64) {
	r := filter.ClampMax(a.Criteria().PriceRange, value)
	a.Filters.SetPriceRange(r.Min, r.Max)
}

func (a *App) SetMinRating(rating *float64) {
	a.Filters.SetMinRating(rating)
}

func (a *App) SetSortBy(option string) error {
	by, err := filter.ParseSortOption(option)
	if err != nil {
		return err
	}
	a.Filters.SetSortBy(by)
	return nil
}

func (a *App) ResetFilters() {
	a.Filters.ResetFilters()
}

// -- Cart --

// CartView is the cart page: lines plus the computed totals.
type CartView struct {
	Items      []cart.Line           `json:"items"`
	TotalItems int                   `json:"totalItems"`
	TotalPrice int64                 `json:"totalPrice"`
	Summary    selector.OrderSummary `json:"summary"`
}

func (a *App) CartView() CartView {
	c := a.Cart.Snapshot().State
	return CartView{
		Items:      c.Items,
		TotalItems: selector.TotalItems(c),
		TotalPrice: selector.TotalPrice(c),
		Summary:    selector.Summary(c),
	}
}

// AddToCart adds one unit of the catalog product in size, then announces it.
// Sized products need an in-stock size; for size-less products size is
// ignored.
func (a *App) AddToCart(productID int, size string) (cart.Line, error) {
	p, err := a.Product(productID)
	if err != nil {
		return cart.Line{}, err
	}

	if !p.HasSizes() {
		size = ""
	} else if size == "" {
		return cart.Line{}, ErrSizeRequired
	} else if !p.InStock(size) {
		return cart.Line{}, fmt.Errorf("%w: %s in size %s", ErrSizeUnavailable, p.Name, size)
	}

	a.Cart.AddToCart(p, size)
	a.Notify(addedMessage(p, size), notification.TypeSuccess)

	line, _ := a.Cart.Snapshot().State.Line(cart.ItemID(p.ID, size))
	a.log.Debug("added to cart",
		zap.String("cartItemId", line.CartItemID),
		zap.Int("quantity", line.Quantity),
	)
	return line, nil
}

func addedMessage(p product.Product, size string) string {
	if size == "" {
		return fmt.Sprintf("%s added to cart", p.Name)
	}
	return fmt.Sprintf("%s (size %s) added to cart", p.Name, size)
}

func (a *App) RemoveFromCart(cartItemID string) {
	a.Cart.RemoveFromCart(cartItemID)
}

func (a *App) UpdateQuantity(cartItemID string, quantity int) {
	a.Cart.UpdateQuantity(cartItemID, quantity)
}

func (a *App) ClearCart() {
	a.Cart.ClearCart()
}

// -- Notifications --

// Notify queues a message with a fresh id and the default duration.
func (a *App) Notify(message string, typ notification.Type) notification.Notification {
	return a.AddNotification(notification.Notification{Message: message, Type: typ})
}

// AddNotification queues n and schedules its dismissal. The caller's id and
// duration are kept; a missing id, duration, type or creation time is
// filled in.
func (a *App) AddNotification(n notification.Notification) notification.Notification {
	if n.ID == "" {
		n.ID = notification.NewID()
	}
	if n.Duration <= 0 {
		n.Duration = notification.DefaultDuration
	}
	if n.Type == "" {
		n.Type = notification.TypeInfo
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = a.now()
	}
	a.Notifications.Add(n)
	a.dismisser.Schedule(n)
	return n
}

func (a *App) DismissNotification(id string) {
	a.dismisser.Dismiss(id)
}

func (a *App) ActiveNotifications() []notification.Notification {
	return a.Notifications.Snapshot().State.Items
}

// NotificationExiting reports whether id is playing its exit animation.
func (a *App) NotificationExiting(id string) bool {
	return a.dismisser.Exiting(id)
}
