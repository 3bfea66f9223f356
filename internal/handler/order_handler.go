package handler

import (
	"encoding/json"
	"net/http"

	"freshmart/internal/model"
	"freshmart/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests: checkout, queries,
// payment and review.
type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	payments service.PaymentService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(
	checkout service.CheckoutService,
	orders service.OrderService,
	payments service.PaymentService,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		payments: payments,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Commit handles POST /api/orders requests.
func (h *OrderHandler) Commit(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.OrderCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.checkout.Commit(r.Context(), uid, req.AddressID, req.PayMethod, req.ProductIDs)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Preview handles POST /api/orders/preview requests.
func (h *OrderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.OrderPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	preview, err := h.checkout.Place(r.Context(), uid, req.ProductIDs)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	orderID := r.PathValue("id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	detail, err := h.orders.GetByID(r.Context(), uid, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Pay handles POST /api/orders/{id}/pay requests.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	payURL, err := h.payments.Initiate(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"payUrl": payURL})
}

// PaymentStatus handles GET /api/orders/{id}/payment requests.
func (h *OrderHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	status, err := h.payments.Confirm(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]model.OrderStatus{"status": status})
}

// Review handles POST /api/orders/{id}/review requests.
func (h *OrderHandler) Review(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.OrderReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.orders.Review(r.Context(), uid, r.PathValue("id"), req.Comments); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
