package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

type testEnv struct {
	store *store.Store
	auth  *AuthHandler
	shop  *ShopHandler
	cart  *CartHandler
	admin *AdminHandler

	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.DB.Close() })

	sessionStore := sessions.NewCookieStore([]byte("test-session-key-32-bytes-long!!"))
	return &testEnv{
		store: s,
		auth:  &AuthHandler{Store: s, SessionStore: sessionStore},
		shop:  &ShopHandler{Store: s},
		cart:  &CartHandler{Store: s, SessionStore: sessionStore},
		admin: &AdminHandler{Store: s, AdminSecret: "letmein"},
	}
}

// do runs one handler, carrying session cookies across calls like a browser.
func (e *testEnv) do(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	handler(resp, req)

	if set := resp.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	return v
}

func (e *testEnv) seedCards(t *testing.T, name, set, number string, price float64, copies int) {
	t.Helper()
	card := &models.Card{
		Name: name, SetName: set, CardNumber: number,
		Rarity: "Common", Price: price, Condition: models.ConditionNearMint,
	}
	require.NoError(t, e.store.CreateCards(card, copies))
}

func TestListCardsGroupsAndFilters(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)
	e.seedCards(t, "Charizard", "Base Set", "4", 120, 1)
	e.seedCards(t, "Snorlax", "Jungle", "11", 12.5, 1)

	resp := e.do(t, e.shop.ListCards, http.MethodGet, "/api/cards", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[struct {
		Cards []models.GroupedCard `json:"cards"`
		Count int                  `json:"count"`
	}](t, resp)
	assert.Equal(t, 3, body.Count)
	for _, g := range body.Cards {
		assert.Empty(t, g.Variants, "variant list is admin-only")
		if g.Name == "Pikachu" {
			assert.Equal(t, 2, g.Quantity)
		}
	}

	resp = e.do(t, e.shop.ListCards, http.MethodGet, "/api/cards?set=Jungle", "")
	body = decodeBody[struct {
		Cards []models.GroupedCard `json:"cards"`
		Count int                  `json:"count"`
	}](t, resp)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Snorlax", body.Cards[0].Name)
}

func TestListCardsEmptyShopReturnsEmptyArray(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, e.shop.ListCards, http.MethodGet, "/api/cards", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cards":[]`)

	resp = e.do(t, e.admin.ListCards, http.MethodGet, "/api/admin/cards", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cards":[]`)
}

func TestAdminListCardsIncludeSold(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)

	order := &models.Order{
		UserID: 1, CustomerName: "Ash", CustomerEmail: "ash@example.com",
		ShippingAddress: "Pallet Town",
		Items: []models.OrderItem{{
			CardName: "Pikachu", SetName: "Base Set", CardNumber: "58",
			Quantity: 1, UnitPrice: 3.25,
		}},
	}
	require.NoError(t, e.store.CreateOrder(order))

	resp := e.do(t, e.admin.ListCards, http.MethodGet, "/api/admin/cards", "")
	body := decodeBody[struct {
		Cards []models.GroupedCard `json:"cards"`
	}](t, resp)
	require.Len(t, body.Cards, 1)
	assert.Equal(t, 1, body.Cards[0].Quantity, "default view counts sellable copies only")

	resp = e.do(t, e.admin.ListCards, http.MethodGet, "/api/admin/cards?include_sold=true", "")
	body = decodeBody[struct {
		Cards []models.GroupedCard `json:"cards"`
	}](t, resp)
	require.Len(t, body.Cards, 1)
	assert.Equal(t, 2, body.Cards[0].Quantity, "audit view counts every copy ever stocked")
}

func TestStockEndpoint(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)

	resp := e.do(t, e.shop.Stock, http.MethodGet,
		"/api/cards/stock?name=Pikachu&set=Base+Set&number=58", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[struct {
		Quantity   int  `json:"quantity"`
		StockKnown bool `json:"stock_known"`
	}](t, resp)
	assert.Equal(t, 2, body.Quantity)
	assert.True(t, body.StockKnown)

	resp = e.do(t, e.shop.Stock, http.MethodGet, "/api/cards/stock?name=Pikachu", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStockFailsClosedWhenStoreIsDown(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)
	e.store.DB.Close()

	resp := e.do(t, e.shop.Stock, http.MethodGet,
		"/api/cards/stock?name=Pikachu&set=Base+Set&number=58", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[struct {
		Quantity   int  `json:"quantity"`
		StockKnown bool `json:"stock_known"`
	}](t, resp)
	assert.Zero(t, body.Quantity, "unknown stock reads as zero, never as available")
	assert.False(t, body.StockKnown)
}

func TestCartFlowAndCheckout(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)

	// Register (also logs in).
	resp := e.do(t, e.auth.Register, http.MethodPost, "/api/register",
		`{"email":"ash@example.com","password":"pikapika1","full_name":"Ash Ketchum"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	// Find a card id to add.
	cards, err := e.store.AvailableCards(true)
	require.NoError(t, err)
	cardID := cards[0].ID

	resp = e.do(t, e.cart.AddToCart, http.MethodPost, "/api/cart",
		`{"card_id":`+jsonInt(cardID)+`,"quantity":2}`)
	require.Equal(t, http.StatusOK, resp.Code)

	view := decodeBody[cartView](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.InDelta(t, 6.50, view.Total, 0.001)

	// A third copy does not exist; the add is rejected.
	resp = e.do(t, e.cart.AddToCart, http.MethodPost, "/api/cart",
		`{"card_id":`+jsonInt(cardID)+`,"quantity":1}`)
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Checkout claims both copies.
	resp = e.do(t, e.auth.RequireAuth(e.cart.Checkout), http.MethodPost, "/api/checkout",
		`{"shipping_address":"1 Pallet Town"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	order := decodeBody[models.Order](t, resp)
	assert.NotEmpty(t, order.OrderRef)
	assert.InDelta(t, 6.50, order.Total, 0.001)

	n, err := e.store.CountInStock(pikachuTestKey())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Cart is empty afterwards.
	resp = e.do(t, e.cart.ViewCart, http.MethodGet, "/api/cart", "")
	view = decodeBody[cartView](t, resp)
	assert.Empty(t, view.Items)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, e.auth.RequireAuth(e.cart.Checkout), http.MethodPost, "/api/checkout",
		`{"shipping_address":"nowhere"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCartViewClampsToLiveStock(t *testing.T) {
	e := newTestEnv(t)
	e.seedCards(t, "Pikachu", "Base Set", "58", 3.25, 2)

	cards, err := e.store.AvailableCards(true)
	require.NoError(t, err)

	resp := e.do(t, e.cart.AddToCart, http.MethodPost, "/api/cart",
		`{"card_id":`+jsonInt(cards[0].ID)+`,"quantity":2}`)
	require.Equal(t, http.StatusOK, resp.Code)

	// An admin deletes one copy while it sits in the cart.
	require.NoError(t, e.store.DeleteCard(cards[0].ID))

	resp = e.do(t, e.cart.ViewCart, http.MethodGet, "/api/cart", "")
	view := decodeBody[cartView](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.True(t, view.Adjusted)
}

func TestAdminGuardAndSetAdmin(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, e.auth.Register, http.MethodPost, "/api/register",
		`{"email":"gary@example.com","password":"eeveelution"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	user := decodeBody[models.User](t, resp)

	// Regular users are kept out of the back office.
	resp = e.do(t, e.auth.RequireAdmin(e.admin.Dashboard), http.MethodGet, "/api/admin/dashboard", "")
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Wrong secret is rejected.
	resp = e.do(t, e.admin.SetAdmin, http.MethodPost, "/api/admin/set-admin",
		`{"user_id":`+jsonInt(user.ID)+`,"admin_secret":"guess"}`)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Right secret promotes, and the guard re-reads the row on the next call.
	resp = e.do(t, e.admin.SetAdmin, http.MethodPost, "/api/admin/set-admin",
		`{"user_id":`+jsonInt(user.ID)+`,"admin_secret":"letmein"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = e.do(t, e.auth.RequireAdmin(e.admin.Dashboard), http.MethodGet, "/api/admin/dashboard", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAdminCreateCardAddsCopies(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cards",
		strings.NewReader(`{"name":"Mewtwo","set_name":"Base Set","card_number":"10","price":24.99,"quantity":3}`))
	resp := httptest.NewRecorder()
	e.admin.CreateCard(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	cards, err := e.store.AvailableCards(true)
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func pikachuTestKey() inventory.Key {
	return inventory.Key{Name: "Pikachu", SetName: "Base Set", CardNumber: "58"}
}
