package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

type ProfileHandler struct {
	Store *store.Store
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CurrentUser(r))
}

func (h *ProfileHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.OrdersByUser(CurrentUser(r).ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *ProfileHandler) MyCollection(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.CollectionByUser(CurrentUser(r).ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if entries == nil {
		entries = []models.CollectionEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"collection": entries})
}

type collectionAddRequest struct {
	Name       string `json:"name"`
	SetName    string `json:"set_name"`
	CardNumber string `json:"card_number"`
	ImageURL   string `json:"image_url"`
}

func (h *ProfileHandler) AddToCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionAddRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.SetName) == "" || strings.TrimSpace(req.CardNumber) == "" {
		respondError(w, http.StatusBadRequest, "name, set_name and card_number are required")
		return
	}

	entry := &models.CollectionEntry{
		UserID:     CurrentUser(r).ID,
		Name:       req.Name,
		SetName:    req.SetName,
		CardNumber: req.CardNumber,
		ImageURL:   req.ImageURL,
	}
	if err := h.Store.AddCollectionEntry(entry); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *ProfileHandler) RemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	if err := h.Store.RemoveCollectionEntry(CurrentUser(r).ID, id); err != nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "removed"})
}
