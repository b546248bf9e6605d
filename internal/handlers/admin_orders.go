package handlers

import (
	"net/http"
	"strconv"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// ListOrders pages through every order in the shop, newest first.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	orders, err := h.Store.GetAllOrders(limit, offset)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	total, err := h.Store.GetTotalOrdersCount()
	if err != nil {
		respondStoreError(w, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders":       orders,
		"total":        total,
		"current_page": page,
		"total_pages":  totalPages,
		"limit":        limit,
	})
}

// OrderDetail returns one order with its lines and the claimed copy ids.
func (h *AdminHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.Store.OrderByID(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.ValidOrderStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	if err := h.Store.UpdateOrderStatus(id, req.Status); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}
