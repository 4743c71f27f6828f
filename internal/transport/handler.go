// Package transport exposes the storefront over HTTP as JSON.
package transport

import (
	"errors"
	"net/http"
	"time"

	"storefront-be/internal/catalog"
	"storefront-be/internal/filter"
	"storefront-be/internal/logger"
	"storefront-be/internal/notification"
	"storefront-be/internal/storefront"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	app *storefront.App
}

func NewHandler(app *storefront.App) *Handler {
	return &Handler{app: app}
}

// Routes returns a router serving every endpoint.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.health)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/featured", h.featuredProducts)
		r.Get("/{id}", h.getProduct)
	})
	r.Get("/facets", h.facets)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.catalogStatus)
		r.Post("/load", h.loadCatalog)
		r.Post("/cancel", h.cancelCatalog)
	})

	r.Route("/filters", func(r chi.Router) {
		r.Get("/", h.getFilters)
		r.Post("/search", h.setSearch)
		r.Post("/brand", h.toggleBrand)
		r.Post("/category", h.toggleCategory)
		r.Post("/size", h.toggleSize)
		r.Post("/price", h.setPrice)
		r.Post("/rating", h.setRating)
		r.Post("/sort", h.setSort)
		r.Post("/reset", h.resetFilters)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addToCart)
		r.Patch("/items/{id}", h.updateQuantity)
		r.Delete("/items/{id}", h.removeFromCart)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Post("/", h.addNotification)
		r.Delete("/{id}", h.dismissNotification)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// -- Catalog --

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.app.Products(), http.StatusOK)
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.app.Featured(), http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToInt(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.app.Product(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.app.Facets(), http.StatusOK)
}

type catalogStatusResponse struct {
	Status     catalog.Status `json:"status"`
	Error      string         `json:"error,omitempty"`
	Aborted    bool           `json:"aborted"`
	Generation uint64         `json:"generation"`
	Count      int            `json:"count"`
}

func (h *Handler) writeCatalogStatus(w http.ResponseWriter, code int) {
	st := h.app.CatalogState()
	utils.WriteJSON(w, catalogStatusResponse{
		Status:     st.Status,
		Error:      st.Error,
		Aborted:    st.Aborted(),
		Generation: st.Generation,
		Count:      len(st.Items),
	}, code)
}

func (h *Handler) catalogStatus(w http.ResponseWriter, r *http.Request) {
	h.writeCatalogStatus(w, http.StatusOK)
}

// loadCatalog starts a load and answers immediately; ?wait=true blocks until
// it settles or the request goes away. ?refresh=true reloads a loaded
// catalog.
func (h *Handler) loadCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var done <-chan struct{}
	if q.Get("refresh") == "true" {
		done = h.app.ReloadCatalog()
	} else {
		done = h.app.LoadCatalog()
	}

	if q.Get("wait") == "true" {
		select {
		case <-done:
		case <-r.Context().Done():
			return
		}
		h.writeCatalogStatus(w, http.StatusOK)
		return
	}
	h.writeCatalogStatus(w, http.StatusAccepted)
}

func (h *Handler) cancelCatalog(w http.ResponseWriter, r *http.Request) {
	cancelled := h.app.CancelCatalogLoad()
	logger.FromCtx(r.Context()).Debug("catalog cancel requested", zap.Bool("cancelled", cancelled))
	utils.WriteJSON(w, map[string]bool{"cancelled": cancelled}, http.StatusOK)
}

// -- Filters --

func (h *Handler) getFilters(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.app.Criteria(), http.StatusOK)
}

// updateFilters decodes the body into req, applies it and returns the new
// criteria.
func updateFilters[T any](h *Handler, w http.ResponseWriter, r *http.Request, apply func(T) error) {
	var req T
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := apply(req); err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, h.app.Criteria(), http.StatusOK)
}

type searchRequest struct {
	Query string `json:"query"`
}

type valueRequest struct {
	Value string `json:"value" validate:"required"`
}

// priceRequest sets both bounds, or moves one slider handle when only one
// is given.
type priceRequest struct {
	Min *int64 `json:"min" validate:"omitempty,gte=0"`
	Max *int64 `json:"max" validate:"omitempty,gte=0"`
}

type ratingRequest struct {
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type sortRequest struct {
	SortBy string `json:"sortBy"`
}

func (h *Handler) setSearch(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req searchRequest) error {
		h.app.SetSearchQuery(req.Query)
		return nil
	})
}

func (h *Handler) toggleBrand(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req valueRequest) error {
		h.app.ToggleBrand(req.Value)
		return nil
	})
}

func (h *Handler) toggleCategory(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req valueRequest) error {
		h.app.ToggleCategory(req.Value)
		return nil
	})
}

func (h *Handler) toggleSize(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req valueRequest) error {
		h.app.ToggleSize(req.Value)
		return nil
	})
}

func (h *Handler) setPrice(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req priceRequest) error {
		switch {
		case req.Min != nil && req.Max != nil:
			if *req.Min > *req.Max {
				return errInvalidPriceRange
			}
			h.app.SetPriceRange(*req.Min, *req.Max)
		case req.Min != nil:
			h.app.MovePriceMin(*req.Min)
		case req.Max != nil:
			h.app.MovePriceMax(*req.Max)
		default:
			return errMissingPrice
		}
		return nil
	})
}

func (h *Handler) setRating(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req ratingRequest) error {
		h.app.SetMinRating(req.Rating)
		return nil
	})
}

func (h *Handler) setSort(w http.ResponseWriter, r *http.Request) {
	updateFilters(h, w, r, func(req sortRequest) error {
		return h.app.SetSortBy(req.SortBy)
	})
}

func (h *Handler) resetFilters(w http.ResponseWriter, r *http.Request) {
	h.app.ResetFilters()
	utils.WriteJSON(w, h.app.Criteria(), http.StatusOK)
}

// -- Cart --

type addToCartRequest struct {
	ProductID int    `json:"productId" validate:"required,gt=0"`
	Size      string `json:"size"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.app.CartView(), http.StatusOK)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	line, err := h.app.AddToCart(req.ProductID, req.Size)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, line, http.StatusCreated)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.app.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
	utils.WriteJSON(w, h.app.CartView(), http.StatusOK)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.app.RemoveFromCart(chi.URLParam(r, "id"))
	utils.WriteJSON(w, h.app.CartView(), http.StatusOK)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.app.ClearCart()
	utils.WriteJSON(w, h.app.CartView(), http.StatusOK)
}

// -- Notifications --

type notificationResponse struct {
	ID        string            `json:"id"`
	Message   string            `json:"message"`
	Type      notification.Type `json:"type"`
	Duration  int64             `json:"duration"`
	CreatedAt time.Time         `json:"createdAt"`
	Exiting   bool              `json:"exiting"`
}

// notifyRequest carries an optional caller-chosen id and a duration in
// milliseconds.
type notifyRequest struct {
	ID       string `json:"id" validate:"max=64"`
	Message  string `json:"message" validate:"required,max=280"`
	Type     string `json:"type"`
	Duration *int64 `json:"duration" validate:"omitempty,gte=0"`
}

func (h *Handler) toNotificationResponse(n notification.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		Duration:  n.Duration.Milliseconds(),
		CreatedAt: n.CreatedAt,
		Exiting:   h.app.NotificationExiting(n.ID),
	}
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	items := h.app.ActiveNotifications()
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, h.toNotificationResponse(n))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) addNotification(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	typ, err := notification.ParseType(req.Type)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	n := notification.Notification{ID: req.ID, Message: req.Message, Type: typ}
	if req.Duration != nil {
		n.Duration = time.Duration(*req.Duration) * time.Millisecond
	}
	n = h.app.AddNotification(n)
	utils.WriteJSON(w, h.toNotificationResponse(n), http.StatusCreated)
}

func (h *Handler) dismissNotification(w http.ResponseWriter, r *http.Request) {
	h.app.DismissNotification(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to status codes. Anything unknown is a 500
// and is logged.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storefront.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storefront.ErrSizeRequired),
		errors.Is(err, storefront.ErrSizeUnavailable):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, filter.ErrUnknownSortOption),
		errors.Is(err, notification.ErrUnknownType),
		errors.Is(err, errInvalidPriceRange),
		errors.Is(err, errMissingPrice):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error("unhandled error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
