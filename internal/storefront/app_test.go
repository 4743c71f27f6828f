package storefront

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/filter"
	"storefront-be/internal/notification"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type heldTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *heldTimer) Stop() bool {
	t.stopped = true
	return true
}

// heldTimers never fires on its own; tests fire timers explicitly.
type heldTimers struct {
	mu     sync.Mutex
	timers []*heldTimer
}

func (h *heldTimers) AfterFunc(d time.Duration, f func()) notification.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &heldTimer{d: d, f: f}
	h.timers = append(h.timers, t)
	return t
}

func (h *heldTimers) fireAll() {
	h.mu.Lock()
	var due []*heldTimer
	for _, t := range h.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	h.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

// armed returns the durations of the timers still waiting to fire.
func (h *heldTimers) armed() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []time.Duration
	for _, t := range h.timers {
		if !t.stopped {
			out = append(out, t.d)
		}
	}
	return out
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, st cart.Storage) (*App, *heldTimers) {
	t.Helper()
	timers := &heldTimers{}
	app := New(context.Background(), product.NewFixtureSource(), st,
		WithCatalogOptions(catalog.WithDelay(0)),
		WithDismisserOptions(notification.WithAfterFunc(timers.AfterFunc)),
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(zap.NewNop()),
	)
	t.Cleanup(app.Close)
	return app, timers
}

func loadedApp(t *testing.T) (*App, *heldTimers) {
	t.Helper()
	app, timers := newTestApp(t, storage.NewMemory())
	select {
	case <-app.LoadCatalog():
	case <-time.After(time.Second):
		t.Fatal("catalog did not load")
	}
	require.Equal(t, catalog.StatusSucceeded, app.CatalogState().Status)
	return app, timers
}

func TestApp_LoadCatalog(t *testing.T) {
	app, _ := newTestApp(t, nil)
	assert.Equal(t, catalog.StatusIdle, app.CatalogState().Status)

	<-app.LoadCatalog()
	st := app.CatalogState()
	assert.Equal(t, catalog.StatusSucceeded, st.Status)
	assert.Len(t, st.Items, 12)
}

func TestApp_ProductsBeforeLoadIsEmpty(t *testing.T) {
	app, _ := newTestApp(t, nil)

	listing := app.Products()
	assert.Empty(t, listing.Items)
	assert.Equal(t, 0, listing.Total)
}

func TestApp_ProductsFiltered(t *testing.T) {
	app, _ := loadedApp(t)

	all := app.Products()
	assert.Equal(t, 12, all.Total)
	assert.Equal(t, 12, all.Count)

	app.ToggleBrand("Vans")
	require.NoError(t, app.SetSortBy("price-asc"))

	listing := app.Products()
	assert.Equal(t, 3, listing.Count)
	assert.Equal(t, 12, listing.Total)
	for i, want := range []int{10, 5, 12} {
		assert.Equal(t, want, listing.Items[i].ID)
	}

	app.ResetFilters()
	assert.Equal(t, 12, app.Products().Count)
	assert.True(t, app.Criteria().IsDefault())
}

func TestApp_ProductsMemoized(t *testing.T) {
	app, _ := loadedApp(t)

	app.Products()
	app.Products()
	filtered, _ := app.ProductViewStats()
	assert.Equal(t, uint64(1), filtered)

	app.SetSearchQuery("court")
	app.Products()
	filtered, _ = app.ProductViewStats()
	assert.Equal(t, uint64(2), filtered)

	app.Facets()
	app.Facets()
	_, facets := app.ProductViewStats()
	assert.Equal(t, uint64(1), facets)
}

func TestApp_UnrelatedUpdatesKeepProductView(t *testing.T) {
	app, timers := loadedApp(t)

	before := app.Products()
	app.Facets()
	filtered, facets := app.ProductViewStats()

	_, err := app.AddToCart(1, "8")
	require.NoError(t, err)
	app.UpdateQuantity("1-8", 4)
	app.Notify("Welcome back", notification.TypeInfo)
	timers.fireAll()
	app.RemoveFromCart("1-8")

	after := app.Products()
	app.Facets()
	gotFiltered, gotFacets := app.ProductViewStats()
	assert.Equal(t, filtered, gotFiltered, "cart and notification changes must not refilter")
	assert.Equal(t, facets, gotFacets)
	assert.Equal(t, before, after)
}

func TestApp_SetSortByRejectsUnknown(t *testing.T) {
	app, _ := newTestApp(t, nil)
	assert.ErrorIs(t, app.SetSortBy("cheapest"), filter.ErrUnknownSortOption)
	assert.Equal(t, filter.SortNone, app.Criteria().SortBy)
}

func TestApp_Facets(t *testing.T) {
	app, _ := loadedApp(t)

	f := app.Facets()
	assert.Equal(t, []string{"Adidas", "Asics", "Nike", "Puma", "Salomon", "Vans"}, f.Brands)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}, f.Sizes)
	assert.Contains(t, f.Categories, "Accessories")
}

func TestApp_Featured(t *testing.T) {
	app, _ := loadedApp(t)

	var ids []int
	for _, p := range app.Featured() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 4, 7, 12}, ids)
}

func TestApp_Product(t *testing.T) {
	app, _ := loadedApp(t)

	p, err := app.Product(3)
	require.NoError(t, err)
	assert.Equal(t, "Classic Court Low", p.Name)

	_, err = app.Product(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestApp_AddToCart(t *testing.T) {
	app, _ := loadedApp(t)

	line, err := app.AddToCart(1, "8")
	require.NoError(t, err)
	assert.Equal(t, "1-8", line.CartItemID)
	assert.Equal(t, 1, line.Quantity)

	line, err = app.AddToCart(1, "8")
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	view := app.CartView()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, int64(14990), view.TotalPrice)
	assert.Equal(t, int64(300), view.Summary.Tax)
	assert.Equal(t, int64(15290), view.Summary.Total)

	notes := app.ActiveNotifications()
	require.Len(t, notes, 2)
	assert.Equal(t, "Air Stride Runner (size 8) added to cart", notes[0].Message)
	assert.Equal(t, notification.TypeSuccess, notes[0].Type)
	assert.Equal(t, notification.DefaultDuration, notes[0].Duration)
	assert.Equal(t, fixedNow, notes[0].CreatedAt)
	assert.NotEqual(t, notes[0].ID, notes[1].ID)
}

func TestApp_AddNotification(t *testing.T) {
	t.Run("Caller id and duration are kept", func(t *testing.T) {
		app, timers := newTestApp(t, nil)

		n := app.AddNotification(notification.Notification{
			ID:       "1718000000000",
			Message:  "Saved",
			Type:     notification.TypeSuccess,
			Duration: 5 * time.Second,
		})
		assert.Equal(t, "1718000000000", n.ID)
		assert.Equal(t, 5*time.Second, n.Duration)
		assert.Equal(t, fixedNow, n.CreatedAt)

		notes := app.ActiveNotifications()
		require.Len(t, notes, 1)
		assert.Equal(t, n, notes[0])
		assert.Equal(t, []time.Duration{5 * time.Second}, timers.armed())

		timers.fireAll()
		assert.True(t, app.NotificationExiting(n.ID))
		assert.Len(t, app.ActiveNotifications(), 1)
		assert.Equal(t, []time.Duration{notification.ExitGrace}, timers.armed())

		timers.fireAll()
		assert.Empty(t, app.ActiveNotifications())
	})

	t.Run("Missing fields are filled in", func(t *testing.T) {
		app, timers := newTestApp(t, nil)

		n := app.AddNotification(notification.Notification{Message: "Heads up"})
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, notification.TypeInfo, n.Type)
		assert.Equal(t, notification.DefaultDuration, n.Duration)
		assert.Equal(t, []time.Duration{notification.DefaultDuration}, timers.armed())
	})
}

func TestApp_AddToCartValidation(t *testing.T) {
	app, _ := loadedApp(t)

	_, err := app.AddToCart(42, "8")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = app.AddToCart(1, "")
	assert.ErrorIs(t, err, ErrSizeRequired)

	_, err = app.AddToCart(1, "9")
	assert.ErrorIs(t, err, ErrSizeUnavailable, "size 9 has zero stock")

	_, err = app.AddToCart(1, "13")
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	_, err = app.AddToCart(8, "6")
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	assert.Empty(t, app.CartView().Items)
	assert.Empty(t, app.ActiveNotifications(), "rejected adds are not announced")
}

func TestApp_AddToCartSizeless(t *testing.T) {
	app, _ := loadedApp(t)

	line, err := app.AddToCart(10, "XL")
	require.NoError(t, err)
	assert.Equal(t, "10-", line.CartItemID)
	assert.Equal(t, "", line.SelectedSize)
	assert.Equal(t, "Canvas Tote Insoles added to cart", app.ActiveNotifications()[0].Message)
}

func TestApp_CartOperations(t *testing.T) {
	app, _ := loadedApp(t)

	_, err := app.AddToCart(3, "6")
	require.NoError(t, err)
	_, err = app.AddToCart(9, "1")
	require.NoError(t, err)

	app.UpdateQuantity("3-6", 4)
	app.UpdateQuantity("3-6", 0)
	app.UpdateQuantity("missing", 3)
	line, ok := app.Cart.Snapshot().State.Line("3-6")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	app.RemoveFromCart("9-1")
	assert.Len(t, app.CartView().Items, 1)

	app.ClearCart()
	view := app.CartView()
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItems)
}

func TestApp_CartSurvivesRestart(t *testing.T) {
	mem := storage.NewMemory()

	first, _ := newTestApp(t, mem)
	<-first.LoadCatalog()
	_, err := first.AddToCart(2, "6")
	require.NoError(t, err)

	second, _ := newTestApp(t, mem)
	items := second.CartView().Items
	require.Len(t, items, 1)
	assert.Equal(t, "2-6", items[0].CartItemID)
	assert.Equal(t, int64(15999), items[0].Product.Price)
}

func TestApp_NotificationLifecycle(t *testing.T) {
	app, timers := newTestApp(t, nil)

	n := app.Notify("Saved", notification.TypeInfo)
	require.Len(t, app.ActiveNotifications(), 1)

	app.DismissNotification(n.ID)
	assert.True(t, app.NotificationExiting(n.ID))
	assert.Len(t, app.ActiveNotifications(), 1, "kept until the exit grace passes")

	timers.fireAll()
	assert.Empty(t, app.ActiveNotifications())
	assert.False(t, app.NotificationExiting(n.ID))
}

func TestApp_NotificationExpires(t *testing.T) {
	app, timers := newTestApp(t, nil)

	app.Notify("a", notification.TypeWarning)
	app.Notify("b", notification.TypeError)

	timers.fireAll()
	assert.Len(t, app.ActiveNotifications(), 2, "first round only starts the exit")
	timers.fireAll()
	assert.Empty(t, app.ActiveNotifications())
}

func TestApp_CancelCatalogLoad(t *testing.T) {
	timers := &heldTimers{}
	app := New(context.Background(), product.NewFixtureSource(), nil,
		WithCatalogOptions(catalog.WithDelay(time.Hour)),
		WithDismisserOptions(notification.WithAfterFunc(timers.AfterFunc)),
		WithLogger(zap.NewNop()),
	)
	defer app.Close()

	done := app.LoadCatalog()
	assert.Equal(t, catalog.StatusLoading, app.CatalogState().Status)
	assert.True(t, app.CancelCatalogLoad())

	st := app.CatalogState()
	assert.Equal(t, catalog.StatusFailed, st.Status)
	assert.True(t, st.Aborted())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cancelled load did not settle")
	}
	assert.False(t, app.CancelCatalogLoad())
}

func TestApp_MovePriceHandles(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.MovePriceMax(100)
	assert.Equal(t, filter.PriceRange{Min: 0, Max: filter.PriceStep}, app.Criteria().PriceRange)

	app.MovePriceMin(99999)
	assert.Equal(t, filter.PriceRange{Min: 0, Max: filter.PriceStep}, app.Criteria().PriceRange)

	app.MovePriceMax(99999)
	app.MovePriceMin(5000)
	assert.Equal(t, filter.PriceRange{Min: 5000, Max: filter.MaxPrice}, app.Criteria().PriceRange)
}
