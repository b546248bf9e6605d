package inventory

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortStockAsc  SortKey = "stock-asc"  // grouped lists only
	SortStockDesc SortKey = "stock-desc" // grouped lists only
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortSetName   SortKey = "set-name" // set, then natural card number; the admin default
)

// ParseSortKey falls back to the admin default for unrecognized input.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc,
		SortStockAsc, SortStockDesc, SortNewest, SortOldest, SortSetName:
		return k
	}
	return SortSetName
}

func less(a, b models.Card, key SortKey) bool {
	switch key {
	case SortNameAsc:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortNameDesc:
		return strings.ToLower(a.Name) > strings.ToLower(b.Name)
	case SortPriceAsc:
		return a.Price < b.Price
	case SortPriceDesc:
		return a.Price > b.Price
	case SortNewest:
		return a.CreatedAt.After(b.CreatedAt)
	case SortOldest:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortSetName:
		if !strings.EqualFold(a.SetName, b.SetName) {
			return strings.ToLower(a.SetName) < strings.ToLower(b.SetName)
		}
		return CompareCardNumbers(a.CardNumber, b.CardNumber) < 0
	}
	return false
}

// SortCards sorts raw rows in place. Stock keys are meaningless pre-grouping
// and leave the order unchanged.
func SortCards(cards []models.Card, key SortKey) {
	if key == SortStockAsc || key == SortStockDesc {
		return
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return less(cards[i], cards[j], key)
	})
}

// SortGrouped sorts grouped cards in place, including by derived quantity.
func SortGrouped(groups []models.GroupedCard, key SortKey) {
	sort.SliceStable(groups, func(i, j int) bool {
		switch key {
		case SortStockAsc:
			return groups[i].Quantity < groups[j].Quantity
		case SortStockDesc:
			return groups[i].Quantity > groups[j].Quantity
		}
		return less(groups[i].Card, groups[j].Card, key)
	})
}

// CompareCardNumbers orders card numbers naturally: "9" before "10" before
// "102a", with any non-numeric remainder compared as text. Numbers like
// "SWSH039" or "TG12" fall back to plain string comparison.
func CompareCardNumbers(a, b string) int {
	an, arest, aok := splitNumber(a)
	bn, brest, bok := splitNumber(b)
	if aok && bok {
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
		return strings.Compare(arest, brest)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func splitNumber(s string) (n int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, strings.ToLower(s[i:]), true
}
