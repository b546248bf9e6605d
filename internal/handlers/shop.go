package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

type ShopHandler struct {
	Store *store.Store
}

// ListCards serves the shop grid: available copies grouped into logical
// cards, filtered and sorted per the query string.
func (h *ShopHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Store.AvailableCards(false)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	q := r.URL.Query()
	filter := inventory.Filter{
		Search: q.Get("search"),
		Set:    q.Get("set"),
	}
	if raw := q.Get("rarity"); raw != "" {
		filter.Rarities = strings.Split(raw, ",")
	}

	groups := inventory.Group(cards)
	groups = filter.ApplyGrouped(groups)
	inventory.SortGrouped(groups, inventory.ParseSortKey(q.Get("sort")))

	// The storefront only needs the representative and the count; the
	// per-copy variant list is an admin concern.
	for i := range groups {
		groups[i].Variants = nil
	}
	if groups == nil {
		groups = []models.GroupedCard{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"cards": groups,
		"count": len(groups),
	})
}

// CardDetail returns one physical copy plus live stock for its logical
// card. A failed stock read reports zero rather than guessing.
func (h *ShopHandler) CardDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	card, err := h.Store.CardByID(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	quantity, known := h.stockFor(inventory.KeyOf(*card))
	respondJSON(w, http.StatusOK, map[string]any{
		"card":        card,
		"quantity":    quantity,
		"stock_known": known,
	})
}

// Stock answers "how many copies are left" for one identity triple with a
// count-only query.
func (h *ShopHandler) Stock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := inventory.Key{
		Name:       q.Get("name"),
		SetName:    q.Get("set"),
		CardNumber: q.Get("number"),
	}
	if key.Name == "" || key.SetName == "" || key.CardNumber == "" {
		respondError(w, http.StatusBadRequest, "name, set and number are required")
		return
	}

	quantity, known := h.stockFor(key)
	respondJSON(w, http.StatusOK, map[string]any{
		"quantity":    quantity,
		"stock_known": known,
	})
}

// stockFor fails closed: if the count cannot be read, the card is treated
// as out of stock instead of assuming availability.
func (h *ShopHandler) stockFor(key inventory.Key) (int, bool) {
	n, err := h.Store.CountInStock(key)
	if err != nil {
		slog.Error("Stock query failed, treating as out of stock",
			"card", key.Name, "set", key.SetName, "error", err)
		return 0, false
	}
	return n, true
}
