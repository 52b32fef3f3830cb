package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/storefront/internal/service"
)

// AddItemRequest is the body of POST /api/cart/items
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
}

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.cartService.Cart(), h.log)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.ProductID <= 0 {
		WriteError(w, http.StatusBadRequest, msgInvalidID, h.log)
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), req.ProductID)
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, cart, h.log)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r, "productId")
	if !ok {
		WriteError(w, http.StatusBadRequest, msgInvalidID, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, h.cartService.RemoveItem(id), h.log)
}

// IncreaseQuantity handles POST /api/cart/items/{productId}/increase
func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r, "productId")
	if !ok {
		WriteError(w, http.StatusBadRequest, msgInvalidID, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, h.cartService.IncreaseQuantity(id), h.log)
}

// DecreaseQuantity handles POST /api/cart/items/{productId}/decrease
func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r, "productId")
	if !ok {
		WriteError(w, http.StatusBadRequest, msgInvalidID, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, h.cartService.DecreaseQuantity(id), h.log)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.cartService.Clear(), h.log)
}

// Checkout handles POST /api/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.cartService.Checkout(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
	h.log.Info("order placed", "order_id", order.ID, "items_count", len(order.Items), "total", order.Total.StringFixed(2))
}
