package storefront

import (
	"storefront-be/internal/metrics"
	"storefront-be/internal/selector"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors exports the stores' counters for a Prometheus registry.
func (a *App) Collectors() []prometheus.Collector {
	cat := &a.Catalog.Metrics
	crt := &a.Cart.Metrics

	return []prometheus.Collector{
		cat.Started.Collector("catalog", "loads_started_total", "Catalog loads started."),
		cat.Succeeded.Collector("catalog", "loads_succeeded_total", "Catalog loads that committed products."),
		cat.Failed.Collector("catalog", "loads_failed_total", "Catalog loads that failed."),
		cat.Aborted.Collector("catalog", "loads_aborted_total", "Catalog loads cancelled before settling."),
		cat.LastDuration.Collector("catalog", "last_load_duration_seconds", "Duration of the most recent catalog load."),
		metrics.GaugeFunc("catalog", "products", "Products in the loaded catalog.", func() float64 {
			return float64(len(a.CatalogState().Items))
		}),

		crt.Saves.Collector("cart", "saves_total", "Cart writes to storage."),
		crt.SaveFailures.Collector("cart", "save_failures_total", "Cart writes that failed."),
		metrics.GaugeFunc("cart", "items", "Units in the cart.", func() float64 {
			return float64(selector.TotalItems(a.Cart.Snapshot().State))
		}),

		a.view.Recomputes.Collector("products", "view_recomputes_total", "Filtered product list recomputations."),
		a.view.FacetRecomputes.Collector("products", "facet_recomputes_total", "Facet recomputations."),

		metrics.GaugeFunc("notifications", "active", "Notifications in the queue.", func() float64 {
			return float64(len(a.ActiveNotifications()))
		}),
	}
}
