package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/order"
)

// OrderHandler serves checkout, listing, tracking and cancellation.
//
// Item prices are resolved from the catalog at checkout time, never taken
// from the request body.
type OrderHandler struct {
	svc      *order.Service
	products *catalog.Provider
}

func NewOrderHandler(svc *order.Service, products *catalog.Provider) *OrderHandler {
	return &OrderHandler{svc: svc, products: products}
}

// Create materializes a pending order from the checkout payload and
// schedules its settlement.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); errs != nil {
		writeValidation(w, errs)
		return
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		prod, err := h.products.GetByID(it.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			h.internalError(w, r, "product lookup failed", err)
			return
		}
		items = append(items, order.Item{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Quantity:    it.Quantity,
			Price:       prod.Price,
			Size:        it.Size,
			Color:       it.Color,
		})
	}

	addr := order.Address{
		Street:     req.ShippingAddress.Street,
		Number:     req.ShippingAddress.Number,
		Complement: req.ShippingAddress.Complement,
		City:       req.ShippingAddress.City,
		State:      req.ShippingAddress.State,
		ZipCode:    req.ShippingAddress.ZipCode,
	}

	o, err := h.svc.Create(r.Context(), claims.UserID, items, addr, order.PaymentMethod(req.PaymentMethod), req.Notes)
	if err != nil {
		h.internalError(w, r, "order create failed", err)
		return
	}

	writeMessage(w, http.StatusCreated, "order created", map[string]any{"order": o})
}

// List returns one page of the user's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	q := r.URL.Query()

	status := order.Status(q.Get("status"))
	switch status {
	case "", order.StatusPending, order.StatusConfirmed, order.StatusPreparing,
		order.StatusShipped, order.StatusDelivered, order.StatusCancelled:
	default:
		writeValidation(w, []FieldError{{Field: "status", Message: "unknown order status"}})
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	orders, page, err := h.svc.List(r.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		h.internalError(w, r, "order list failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": page,
	})
}

// Get returns one of the user's orders.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeValidation(w, []FieldError{{Field: "id", Message: "must be an integer"}})
		return
	}

	o, err := h.svc.Get(r.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "order get failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"order": o})
}

// Track returns the delivery projection for an order number. Public: order
// numbers are shared with recipients.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	t, err := h.svc.Track(r.Context(), number)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "order track failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"tracking": t})
}

// Cancel cancels one of the user's orders while it is still cancellable.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeValidation(w, []FieldError{{Field: "id", Message: "must be an integer"}})
		return
	}

	o, err := h.svc.Cancel(r.Context(), claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrNotCancellable):
			writeError(w, http.StatusBadRequest, "order can no longer be cancelled")
		default:
			h.internalError(w, r, "order cancel failed", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "order cancelled", map[string]any{"order": o})
}

// Stats returns the user's per-status order counts and paid spend.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	st, err := h.svc.StatsSummary(r.Context(), claims.UserID)
	if err != nil {
		h.internalError(w, r, "order stats failed", err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"stats": st})
}

func (h *OrderHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
