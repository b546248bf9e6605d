package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

type AdminHandler struct {
	Store   *store.Store
	Catalog CatalogClient // nil disables import

	// AdminSecret guards the bootstrap set-admin endpoint. It promotes the
	// first operator account; day-to-day role changes go through an
	// existing admin session instead.
	AdminSecret string
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

type setAdminRequest struct {
	UserID      int    `json:"user_id"`
	AdminSecret string `json:"admin_secret"`
}

// SetAdmin promotes a user to admin given the shared bootstrap secret.
// Unlike a session, the secret is compared in constant time and the role
// only ever lives in the users table; nothing client-side is trusted.
func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.AdminSecret == "" {
		respondError(w, http.StatusForbidden, "admin bootstrap is disabled")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminSecret), []byte(h.AdminSecret)) != 1 {
		slog.Warn("Rejected set-admin attempt", "user_id", req.UserID, "ip", r.RemoteAddr)
		respondError(w, http.StatusForbidden, "invalid admin secret")
		return
	}

	if err := h.Store.SetAdmin(req.UserID, true); err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	slog.Info("User promoted to admin", "user_id", req.UserID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "admin granted"})
}
