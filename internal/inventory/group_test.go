package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

func card(id int, name, set, number string) models.Card {
	return models.Card{
		ID:         id,
		Name:       name,
		SetName:    set,
		CardNumber: number,
		Condition:  models.ConditionNearMint,
	}
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]models.Card{}))
}

func TestGroupCountsDuplicates(t *testing.T) {
	cards := []models.Card{
		card(1, "Pikachu", "Base Set", "58"),
		card(2, "Pikachu", "Base Set", "58"),
		card(3, "Charizard", "Base Set", "4"),
	}

	groups := Group(cards)
	require.Len(t, groups, 2)

	assert.Equal(t, "Pikachu", groups[0].Name)
	assert.Equal(t, 2, groups[0].Quantity)
	assert.Len(t, groups[0].Variants, 2)
	assert.Equal(t, 1, groups[0].ID, "representative is the first-seen row")

	assert.Equal(t, "Charizard", groups[1].Name)
	assert.Equal(t, 1, groups[1].Quantity)
}

func TestGroupQuantitiesSumToInputLength(t *testing.T) {
	cards := []models.Card{
		card(1, "Pikachu", "Base Set", "58"),
		card(2, "Charizard", "Base Set", "4"),
		card(3, "Pikachu", "Base Set", "58"),
		card(4, "Pikachu", "Jungle", "60"),
		card(5, "Charizard", "Base Set", "4"),
		card(6, "Snorlax", "Jungle", "11"),
	}

	groups := Group(cards)

	total := 0
	seen := map[Key]bool{}
	for _, g := range groups {
		total += g.Quantity
		k := KeyOf(g.Card)
		assert.False(t, seen[k], "key %v appears in more than one group", k)
		seen[k] = true
	}
	assert.Equal(t, len(cards), total)

	for _, c := range cards {
		assert.True(t, seen[KeyOf(c)], "input row %d lost its group", c.ID)
	}
}

func TestGroupOrderIsStable(t *testing.T) {
	cards := []models.Card{
		card(1, "Snorlax", "Jungle", "11"),
		card(2, "Pikachu", "Base Set", "58"),
		card(3, "Snorlax", "Jungle", "11"),
		card(4, "Charizard", "Base Set", "4"),
	}

	first := Group(cards)
	second := Group(cards)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, KeyOf(first[i].Card), KeyOf(second[i].Card))
	}
	// First-seen order of keys, not alphabetical.
	assert.Equal(t, "Snorlax", first[0].Name)
	assert.Equal(t, "Pikachu", first[1].Name)
	assert.Equal(t, "Charizard", first[2].Name)
}

func TestGroupDoesNotMergePerCopyFields(t *testing.T) {
	a := card(1, "Pikachu", "Base Set", "58")
	a.Condition = models.ConditionMint
	a.SellerNotes = "pack fresh"
	b := card(2, "Pikachu", "Base Set", "58")
	b.Condition = models.ConditionPlayed
	b.SellerNotes = "whitening on back"

	groups := Group([]models.Card{a, b})
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, models.ConditionMint, g.Condition, "representative wins")
	assert.Equal(t, "pack fresh", g.SellerNotes)
	require.Len(t, g.Variants, 2)
	assert.Equal(t, models.ConditionPlayed, g.Variants[1].Condition)
}

func TestGroupAfterDeletion(t *testing.T) {
	cards := []models.Card{
		card(1, "Pikachu", "Base Set", "58"),
		card(2, "Pikachu", "Base Set", "58"),
		card(3, "Charizard", "Base Set", "4"),
	}

	// Selling/deleting one physical copy drops that group's quantity by one.
	remaining := cards[1:]
	groups := Group(remaining)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Quantity)
	assert.Equal(t, 1, groups[1].Quantity)
}

func TestCountStock(t *testing.T) {
	cards := []models.Card{
		card(1, "Pikachu", "Base Set", "58"),
		card(2, "Pikachu", "Base Set", "58"),
		card(3, "Charizard", "Base Set", "4"),
	}

	assert.Equal(t, 2, CountStock(cards, Key{"Pikachu", "Base Set", "58"}))
	assert.Equal(t, 1, CountStock(cards, Key{"Charizard", "Base Set", "4"}))
	assert.Equal(t, 0, CountStock(cards, Key{"Mewtwo", "Base Set", "10"}))
}
