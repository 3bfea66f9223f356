package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"freshmart/internal/model"
	"freshmart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// List handles GET /api/cart requests.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.List(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Count handles GET /api/cart/count requests.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	count, err := h.service.Count(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	quantity, err := h.service.Add(r.Context(), uid, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

// UpdateItem handles PUT /api/cart/items requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Update(r.Context(), uid, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"quantity": req.Quantity})
}

// RemoveItem handles DELETE /api/cart/items/{productID} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), uid, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
