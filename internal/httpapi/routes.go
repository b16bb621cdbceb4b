package httpapi

import (
	"context"
	"errors"
	"net/http"

	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Catalog is the read side the handlers depend on; *catalog.Store satisfies it.
type Catalog interface {
	ProductsByCategory(ctx context.Context, slug string) ([]*product.Product, error)
	Categories(ctx context.Context) ([]*category.Category, error)
	Product(ctx context.Context, id string) (*product.Product, error)
	Reload(ctx context.Context) (*catalog.Snapshot, error)
	Stats() map[string]uint64
}

type Handler struct {
	catalog Catalog
}

func NewHandler(c Catalog) *Handler {
	return &Handler{catalog: c}
}

// RegisterRoutes wires the storefront API. admin wraps routes that need an
// administrator.
func (h *Handler) RegisterRoutes(r *mux.Router, admin func(http.Handler) http.Handler) {
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{slug}/products", h.listProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)

	api.Handle("/admin/catalog/reload", admin(http.HandlerFunc(h.reloadCatalog))).Methods(http.MethodPost)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "OK",
		"stats":  h.catalog.Stats(),
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) listProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	products, err := h.catalog.ProductsByCategory(r.Context(), slug)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalog.Reload(r.Context())
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	logger.FromCtx(r.Context()).Info("catalog reloaded by admin",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("products", len(snap.Products)),
	)

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"categories": len(snap.Categories),
		"products":   len(snap.Products),
		"loadedAt":   snap.LoadedAt,
	})
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		logger.FromCtx(r.Context()).Error("catalog unavailable", zap.Error(err))
		utils.WriteJSONError(w, "catalog temporarily unavailable", http.StatusServiceUnavailable)
	default:
		logger.FromCtx(r.Context()).Error("unexpected catalog error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
