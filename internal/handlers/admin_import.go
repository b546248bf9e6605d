package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/catalog"
)

const (
	importBatchSize  = 10
	importBatchDelay = 250 * time.Millisecond
)

type importRequest struct {
	Query    string `json:"query"`     // catalog search, e.g. "set.id:base1"
	SetID    string `json:"set_id"`    // shorthand for query "set.id:<id>"
	Quantity int    `json:"quantity"`  // copies per imported card, default 1
	MaxCards int    `json:"max_cards"` // cap on catalog results, default 50
}

type importResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCards pulls card metadata from the catalog API and bulk-inserts it
// as inventory, in small batches with a pause between them to stay under
// the catalog's rate limits. Partial failures are counted and reported, not
// rolled back: an import that lands 180 of 200 cards is still useful.
func (h *AdminHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		respondError(w, http.StatusServiceUnavailable, "catalog import is not configured")
		return
	}

	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" && req.SetID != "" {
		query = "set.id:" + req.SetID
	}
	if query == "" {
		respondError(w, http.StatusBadRequest, "query or set_id is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.MaxCards < 1 || req.MaxCards > 250 {
		req.MaxCards = 50
	}

	apiCards, err := h.Catalog.SearchCards(r.Context(), query, 1, req.MaxCards)
	if err != nil {
		slog.Error("Catalog search failed", "query", query, "error", err)
		respondError(w, http.StatusBadGateway, "catalog API unavailable")
		return
	}
	if len(apiCards) == 0 {
		respondJSON(w, http.StatusOK, importResult{})
		return
	}

	var result importResult
	for start := 0; start < len(apiCards); start += importBatchSize {
		end := min(start+importBatchSize, len(apiCards))

		for _, a := range apiCards[start:end] {
			card := catalog.ToCard(a)
			if err := h.Store.CreateCards(&card, req.Quantity); err != nil {
				slog.Warn("Import failed for card", "card", a.Name, "set", a.Set.Name, "error", err)
				result.Failed++
				if len(result.Errors) < 10 {
					result.Errors = append(result.Errors, a.Name+": "+err.Error())
				}
				continue
			}
			result.Imported++
		}

		if end < len(apiCards) {
			time.Sleep(importBatchDelay)
		}
	}

	slog.Info("Import finished", "query", query, "imported", result.Imported, "failed", result.Failed)
	respondJSON(w, http.StatusOK, result)
}
