package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
)

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	catalog *catalog.Provider
}

func NewProductHandler(c *catalog.Provider) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// List returns products matching the query filters, with the catalog-wide
// price range for the UI's sliders.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := catalog.Filter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	}

	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			writeValidation(w, []FieldError{{Field: "minPrice", Message: "must be a decimal number"}})
			return
		}
		f.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			writeValidation(w, []FieldError{{Field: "maxPrice", Message: "must be a decimal number"}})
			return
		}
		f.MaxPrice = &d
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeValidation(w, []FieldError{{Field: "limit", Message: "must be a non-negative integer"}})
			return
		}
		f.Limit = n
	}

	products := h.catalog.List(f)
	writeData(w, http.StatusOK, map[string]any{
		"products":   products,
		"total":      len(products),
		"priceRange": h.catalog.PriceRange(),
	})
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeValidation(w, []FieldError{{Field: "id", Message: "must be an integer"}})
		return
	}

	prod, err := h.catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, http.StatusOK, map[string]any{"product": prod})
}

// Featured returns the highlighted products for the home page.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Featured()
	writeData(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// Categories returns the storefront navigation categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"categories": h.catalog.Categories(),
	})
}
