package inventory

import (
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// Key identifies a logical card. Every physical copy of the same card shares
// one key; stock is the number of copies behind it.
type Key struct {
	Name       string
	SetName    string
	CardNumber string
}

// KeyOf extracts the identity triple from a card row.
func KeyOf(c models.Card) Key {
	return Key{Name: c.Name, SetName: c.SetName, CardNumber: c.CardNumber}
}

// Group folds card rows into one GroupedCard per distinct identity triple,
// preserving first-seen key order. The first row of a partition is the
// representative; rows that differ in per-copy fields (condition, notes, id)
// stay visible only through Variants.
func Group(cards []models.Card) []models.GroupedCard {
	if len(cards) == 0 {
		return nil
	}

	index := make(map[Key]int, len(cards))
	groups := make([]models.GroupedCard, 0, len(cards))

	for _, c := range cards {
		k := KeyOf(c)
		if i, ok := index[k]; ok {
			groups[i].Quantity++
			groups[i].Variants = append(groups[i].Variants, c)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, models.GroupedCard{
			Card:     c,
			Quantity: 1,
			Variants: []models.Card{c},
		})
	}
	return groups
}

// CountStock counts rows in cards matching the key. The store has a
// count-only query for the common path; this covers already-fetched slices.
func CountStock(cards []models.Card, k Key) int {
	n := 0
	for _, c := range cards {
		if KeyOf(c) == k {
			n++
		}
	}
	return n
}
