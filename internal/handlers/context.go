package handlers

import (
	"context"
	"net/http"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// withUser attaches the authenticated user to the request context. Handlers
// downstream of the auth middleware read the user from here instead of
// re-parsing the session; there is no ambient role state anywhere else.
func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, u))
}

// CurrentUser returns the user the auth middleware resolved, or nil on
// unauthenticated routes.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userContextKey).(*models.User)
	return u
}
