package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

func sampleCards() []models.Card {
	pika := card(1, "Pikachu", "Base Set", "58")
	pika.Rarity = "Common"
	pika.Description = "Mouse Pokemon"

	zard := card(2, "Charizard", "Base Set", "4")
	zard.Rarity = "Rare Holo"

	snor := card(3, "Snorlax", "Jungle", "11")
	snor.Rarity = "Rare"

	return []models.Card{pika, zard, snor}
}

func TestFilterNoOpReturnsInputUnchanged(t *testing.T) {
	cards := sampleCards()

	for _, f := range []Filter{
		{},
		{Set: "all"},
		{Search: "", Set: "all", Rarities: []string{}},
	} {
		assert.Equal(t, cards, f.ApplyCards(cards))
	}
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	cards := sampleCards()

	out := Filter{Search: "chari"}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Charizard", out[0].Name)

	out = Filter{Search: "PIKA"}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Pikachu", out[0].Name)

	assert.Empty(t, Filter{Search: "mewtwo"}.ApplyCards(cards))
}

func TestFilterSearchAllCoversDescriptionAndNumber(t *testing.T) {
	cards := sampleCards()

	// Plain search only looks at names.
	assert.Empty(t, Filter{Search: "mouse"}.ApplyCards(cards))

	out := Filter{Search: "mouse", SearchAll: true}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Pikachu", out[0].Name)

	out = Filter{Search: "58", SearchAll: true}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Pikachu", out[0].Name)
}

func TestFilterBySetAndRarity(t *testing.T) {
	cards := sampleCards()

	out := Filter{Set: "Jungle"}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Snorlax", out[0].Name)

	out = Filter{Rarities: []string{"Rare", "Rare Holo"}}.ApplyCards(cards)
	require.Len(t, out, 2)
	assert.Equal(t, "Charizard", out[0].Name)
	assert.Equal(t, "Snorlax", out[1].Name)
}

func TestFilterStagesCombine(t *testing.T) {
	cards := sampleCards()

	out := Filter{Search: "a", Set: "Base Set", Rarities: []string{"Rare Holo"}}.ApplyCards(cards)
	require.Len(t, out, 1)
	assert.Equal(t, "Charizard", out[0].Name)
}

func TestFilterGrouped(t *testing.T) {
	groups := Group(sampleCards())

	out := Filter{Set: "Base Set"}.ApplyGrouped(groups)
	require.Len(t, out, 2)

	noop := Filter{}.ApplyGrouped(groups)
	assert.Equal(t, groups, noop)
}
