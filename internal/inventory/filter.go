package inventory

import (
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// Filter narrows a card list before sorting. Zero values are no-ops: empty
// search matches everything, empty or "all" set keeps every set, an empty
// rarity list keeps every rarity.
type Filter struct {
	Search    string
	Set       string
	Rarities  []string
	SearchAll bool // admin mode: search description and card number too
}

func (f Filter) empty() bool {
	return f.Search == "" && (f.Set == "" || f.Set == "all") && len(f.Rarities) == 0
}

func (f Filter) matches(c models.Card) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(c.Name), q)
		if !hit && f.SearchAll {
			hit = strings.Contains(strings.ToLower(c.Description), q) ||
				strings.Contains(strings.ToLower(c.CardNumber), q)
		}
		if !hit {
			return false
		}
	}
	if f.Set != "" && f.Set != "all" && !strings.EqualFold(c.SetName, f.Set) {
		return false
	}
	if len(f.Rarities) > 0 {
		hit := false
		for _, r := range f.Rarities {
			if strings.EqualFold(c.Rarity, r) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// ApplyCards filters raw rows.
func (f Filter) ApplyCards(cards []models.Card) []models.Card {
	if f.empty() {
		return cards
	}
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if f.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyGrouped filters grouped cards on their representative fields.
func (f Filter) ApplyGrouped(groups []models.GroupedCard) []models.GroupedCard {
	if f.empty() {
		return groups
	}
	out := make([]models.GroupedCard, 0, len(groups))
	for _, g := range groups {
		if f.matches(g.Card) {
			out = append(out, g)
		}
	}
	return out
}
