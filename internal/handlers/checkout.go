package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

type checkoutRequest struct {
	CustomerName    string `json:"customer_name"`
	ShippingAddress string `json:"shipping_address"`
}

// Checkout turns the session cart into an order. The store claims the
// physical copies inside one transaction, so a cart that raced another
// shopper fails with a conflict instead of overselling.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		req.CustomerName = user.FullName
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		respondError(w, http.StatusBadRequest, "customer name is required")
		return
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		respondError(w, http.StatusBadRequest, "shipping address is required")
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	items := loadCart(session)
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	order := &models.Order{
		UserID:          user.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   user.Email,
		ShippingAddress: req.ShippingAddress,
	}
	for _, it := range items {
		order.Items = append(order.Items, models.OrderItem{
			CardName:   it.Name,
			SetName:    it.SetName,
			CardNumber: it.CardNumber,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
		})
	}

	if err := h.Store.CreateOrder(order); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Order placed", "order_ref", order.OrderRef, "user_id", user.ID, "total", order.Total)

	h.saveCart(w, r, session, nil)
	respondJSON(w, http.StatusCreated, order)
}
