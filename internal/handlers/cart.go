package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

// CartHandler keeps the shopper's cart in the session cookie. Quantities
// are wishes, not reservations: every view re-checks live stock and clamps,
// and checkout is where copies actually get claimed.
type CartHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
}

func loadCart(session *sessions.Session) []models.CartItem {
	items, _ := session.Values["cart"].([]models.CartItem)
	return items
}

func (h *CartHandler) saveCart(w http.ResponseWriter, r *http.Request, session *sessions.Session, items []models.CartItem) {
	session.Values["cart"] = items
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save cart session", "error", err)
	}
}

// availableFor fails closed: a broken stock read means nothing is sellable.
func (h *CartHandler) availableFor(key inventory.Key) int {
	n, err := h.Store.CountInStock(key)
	if err != nil {
		slog.Error("Cart stock check failed, treating as zero", "card", key.Name, "error", err)
		return 0
	}
	return n
}

type cartView struct {
	Items    []models.CartItem `json:"items"`
	Total    float64           `json:"total"`
	Adjusted bool              `json:"adjusted"` // quantities were clamped to live stock
}

func (h *CartHandler) buildView(items []models.CartItem) cartView {
	view := cartView{Items: []models.CartItem{}}
	for _, it := range items {
		key := inventory.Key{Name: it.Name, SetName: it.SetName, CardNumber: it.CardNumber}
		if avail := h.availableFor(key); it.Quantity > avail {
			it.Quantity = avail
			view.Adjusted = true
		}
		if it.Quantity <= 0 {
			view.Adjusted = true
			continue
		}
		view.Items = append(view.Items, it)
		view.Total += it.Price * float64(it.Quantity)
	}
	return view
}

func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	view := h.buildView(loadCart(session))
	if view.Adjusted {
		h.saveCart(w, r, session, view.Items)
	}
	respondJSON(w, http.StatusOK, view)
}

type cartAddRequest struct {
	CardID   int `json:"card_id"`
	Quantity int `json:"quantity"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	card, err := h.Store.CardByID(req.CardID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	items := loadCart(session)

	key := inventory.KeyOf(*card)
	wanted := req.Quantity
	idx := -1
	for i, it := range items {
		if it.Name == key.Name && it.SetName == key.SetName && it.CardNumber == key.CardNumber {
			idx = i
			wanted += it.Quantity
			break
		}
	}

	if avail := h.availableFor(key); wanted > avail {
		respondError(w, http.StatusConflict, "not enough copies in stock")
		return
	}

	if idx >= 0 {
		items[idx].Quantity = wanted
	} else {
		items = append(items, models.CartItem{
			CardID:     card.ID,
			Name:       card.Name,
			SetName:    card.SetName,
			CardNumber: card.CardNumber,
			ImageURL:   card.ImageURL,
			Price:      card.Price, // snapshotted at add-to-cart time
			Quantity:   req.Quantity,
		})
	}

	h.saveCart(w, r, session, items)
	respondJSON(w, http.StatusOK, h.buildView(items))
}

type cartUpdateRequest struct {
	CardID   int `json:"card_id"`
	Quantity int `json:"quantity"` // 0 removes the line
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req cartUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	items := loadCart(session)

	updated := items[:0]
	found := false
	for _, it := range items {
		if it.CardID == req.CardID {
			found = true
			if req.Quantity <= 0 {
				continue
			}
			key := inventory.Key{Name: it.Name, SetName: it.SetName, CardNumber: it.CardNumber}
			if avail := h.availableFor(key); req.Quantity > avail {
				respondError(w, http.StatusConflict, "not enough copies in stock")
				return
			}
			it.Quantity = req.Quantity
		}
		updated = append(updated, it)
	}
	if !found {
		respondError(w, http.StatusNotFound, "item not in cart")
		return
	}

	h.saveCart(w, r, session, updated)
	respondJSON(w, http.StatusOK, h.buildView(updated))
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	items := loadCart(session)

	updated := items[:0]
	for _, it := range items {
		if it.CardID != req.CardID {
			updated = append(updated, it)
		}
	}

	h.saveCart(w, r, session, updated)
	respondJSON(w, http.StatusOK, h.buildView(updated))
}
