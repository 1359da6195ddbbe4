package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/cart"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
)

// CartHandler serves the authenticated user's cart.
type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Get returns the user's cart with recomputed totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	c, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		h.internalError(w, r, "cart load failed", err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"cart": c})
}

// Count returns only the item count, for the header badge.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	n, err := h.svc.Count(r.Context(), claims.UserID)
	if err != nil {
		h.internalError(w, r, "cart count failed", err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"count": n})
}

// Add merges a quantity of one product variant into the cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	c, err := h.svc.AddItem(r.Context(), claims.UserID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.internalError(w, r, "cart add failed", err)
		return
	}

	writeMessage(w, http.StatusOK, "item added to cart", map[string]any{"cart": c})
}

// Update overwrites a line's quantity; zero removes the line.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	lineID := chi.URLParam(r, "itemId")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	c, err := h.svc.UpdateItem(r.Context(), claims.UserID, lineID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			writeError(w, http.StatusNotFound, "cart item not found")
			return
		}
		h.internalError(w, r, "cart update failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"cart": c})
}

// Remove deletes a line from the cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	lineID := chi.URLParam(r, "itemId")

	c, err := h.svc.RemoveItem(r.Context(), claims.UserID, lineID)
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			writeError(w, http.StatusNotFound, "cart item not found")
			return
		}
		h.internalError(w, r, "cart remove failed", err)
		return
	}

	writeMessage(w, http.StatusOK, "item removed from cart", map[string]any{"cart": c})
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	c, err := h.svc.Clear(r.Context(), claims.UserID)
	if err != nil {
		h.internalError(w, r, "cart clear failed", err)
		return
	}
	writeMessage(w, http.StatusOK, "cart cleared", map[string]any{"cart": c})
}

func (h *CartHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
