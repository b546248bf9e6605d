package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.DB.Close() })
	return s
}

func pikachu() *models.Card {
	return &models.Card{
		Name:       "Pikachu",
		SetName:    "Base Set",
		CardNumber: "58",
		Rarity:     "Common",
		Price:      3.25,
		Condition:  models.ConditionNearMint,
	}
}

var pikachuKey = inventory.Key{Name: "Pikachu", SetName: "Base Set", CardNumber: "58"}

func TestCreateCardsInsertsOneRowPerCopy(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateCards(pikachu(), 3))

	cards, err := s.AvailableCards(true)
	require.NoError(t, err)
	assert.Len(t, cards, 3)

	n, err := s.CountInStock(pikachuKey)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountInStockIgnoresSoldCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 2))

	order := &models.Order{
		UserID: 1, CustomerName: "Ash", CustomerEmail: "ash@example.com",
		ShippingAddress: "Pallet Town",
		Items: []models.OrderItem{{
			CardName: "Pikachu", SetName: "Base Set", CardNumber: "58",
			Quantity: 1, UnitPrice: 3.25,
		}},
	}
	require.NoError(t, s.CreateOrder(order))

	n, err := s.CountInStock(pikachuKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "sold copy left the available pool")
}

func TestDeleteCardDecrementsStockByOne(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 2))

	cards, err := s.AvailableCards(true)
	require.NoError(t, err)
	require.NoError(t, s.DeleteCard(cards[0].ID))

	n, err := s.CountInStock(pikachuKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, s.DeleteCard(9999), ErrCardNotFound)
}

func TestDeleteCardGroupRemovesAllCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 3))
	zard := pikachu()
	zard.Name, zard.CardNumber = "Charizard", "4"
	require.NoError(t, s.CreateCards(zard, 1))

	deleted, err := s.DeleteCardGroup(pikachuKey)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	cards, err := s.AvailableCards(true)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Charizard", cards[0].Name)
}

func TestUpdateCardCascadesSharedFieldsOnly(t *testing.T) {
	s := newTestStore(t)
	first := pikachu()
	first.SellerNotes = "pack fresh"
	require.NoError(t, s.CreateCards(first, 1))

	second := pikachu()
	second.Condition = models.ConditionPlayed
	second.SellerNotes = "whitening on back"
	require.NoError(t, s.CreateCards(second, 1))

	cards, err := s.CardsByKey(pikachuKey)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	edited := cards[0]
	edited.Price = 9.99
	edited.Description = "price bump"
	edited.Condition = models.ConditionMint
	require.NoError(t, s.UpdateCard(&edited, true))

	cards, err = s.CardsByKey(pikachuKey)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	for _, c := range cards {
		assert.Equal(t, 9.99, c.Price, "price cascades to siblings")
		assert.Equal(t, "price bump", c.Description)
	}

	sibling := cards[1]
	assert.Equal(t, models.ConditionPlayed, sibling.Condition, "condition stays per-copy")
	assert.Equal(t, "whitening on back", sibling.SellerNotes, "notes stay per-copy")
}

func TestUpdateCardCascadeFollowsOldIdentity(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 2))

	cards, err := s.CardsByKey(pikachuKey)
	require.NoError(t, err)

	// Fixing a typo in the set name must carry the whole group along.
	edited := cards[0]
	edited.SetName = "Base Set 2"
	require.NoError(t, s.UpdateCard(&edited, true))

	moved, err := s.CardsByKey(inventory.Key{Name: "Pikachu", SetName: "Base Set 2", CardNumber: "58"})
	require.NoError(t, err)
	assert.Len(t, moved, 2)

	left, err := s.CardsByKey(pikachuKey)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestUpdateCardWithoutCascadeLeavesSiblings(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 2))

	cards, err := s.CardsByKey(pikachuKey)
	require.NoError(t, err)

	edited := cards[0]
	edited.Price = 50
	require.NoError(t, s.UpdateCard(&edited, false))

	cards, err = s.CardsByKey(pikachuKey)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cards[0].Price)
	assert.Equal(t, 3.25, cards[1].Price)
}

func TestAvailableCardsCacheInvalidatedByMutation(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 1))

	cards, err := s.AvailableCards(false)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	// Mutation drops the cache, so the next cached read sees the new copy.
	require.NoError(t, s.CreateCards(pikachu(), 1))
	cards, err = s.AvailableCards(false)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestAllCardsIncludesSoldCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateCards(pikachu(), 2))

	order := &models.Order{
		UserID: 1, CustomerName: "Ash", CustomerEmail: "ash@example.com",
		ShippingAddress: "Pallet Town",
		Items: []models.OrderItem{{
			CardName: "Pikachu", SetName: "Base Set", CardNumber: "58",
			Quantity: 1, UnitPrice: 3.25,
		}},
	}
	require.NoError(t, s.CreateOrder(order))

	available, err := s.AvailableCards(true)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	all, err := s.AllCards()
	require.NoError(t, err)
	require.Len(t, all, 2)

	sold := 0
	for _, c := range all {
		if c.SoldOrderID != 0 {
			sold++
		}
	}
	assert.Equal(t, 1, sold)
}

func TestCardByIDMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CardByID(42)
	assert.ErrorIs(t, err, ErrCardNotFound)
}
