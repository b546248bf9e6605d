package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/catalog"
)

// CatalogClient is what the browse pages and admin import need from the
// external card-catalog API.
type CatalogClient interface {
	ListSets(ctx context.Context) ([]catalog.Set, error)
	SearchCards(ctx context.Context, q string, page, pageSize int) ([]catalog.APICard, error)
}

// CatalogHandler serves the browse/tracker pages that render the external
// catalog directly, bypassing shop inventory entirely.
type CatalogHandler struct {
	Client CatalogClient
}

func (h *CatalogHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Client.ListSets(r.Context())
	if err != nil {
		slog.Error("Catalog sets fetch failed", "error", err)
		respondError(w, http.StatusBadGateway, "catalog API unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sets": sets})
}

func (h *CatalogHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 250 {
		pageSize = 50
	}

	cards, err := h.Client.SearchCards(r.Context(), q, page, pageSize)
	if err != nil {
		slog.Error("Catalog search failed", "q", q, "error", err)
		respondError(w, http.StatusBadGateway, "catalog API unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": cards})
}
