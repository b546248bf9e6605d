package catalog

import "strings"

// Fallback prices by rarity for cards the market APIs have no figure for.
var rarityPrices = map[string]float64{
	"common":      0.99,
	"uncommon":    1.99,
	"rare":        3.99,
	"rare holo":   7.99,
	"ultra rare":  14.99,
	"secret rare": 29.99,
}

const defaultPrice = 2.49

// PriceFor picks a sale price: cardmarket average, then tcgplayer market,
// then the rarity heuristic.
func PriceFor(a APICard) float64 {
	if a.Cardmarket != nil && a.Cardmarket.Prices.AverageSellPrice > 0 {
		return a.Cardmarket.Prices.AverageSellPrice
	}
	if a.TCGPlayer != nil {
		for _, variant := range []string{"holofoil", "normal", "reverseHolofoil"} {
			if p, ok := a.TCGPlayer.Prices[variant]; ok && p.Market > 0 {
				return p.Market
			}
		}
	}
	return PriceForRarity(a.Rarity)
}

// PriceForRarity maps a rarity string to its default price. Unknown or
// exotic rarities get a flat default; "Rare Holo GX" and friends match on
// their "rare holo" prefix.
func PriceForRarity(rarity string) float64 {
	r := strings.ToLower(strings.TrimSpace(rarity))
	if p, ok := rarityPrices[r]; ok {
		return p
	}
	if strings.HasPrefix(r, "rare holo") {
		return rarityPrices["rare holo"]
	}
	if strings.Contains(r, "secret") {
		return rarityPrices["secret rare"]
	}
	if strings.Contains(r, "ultra") || strings.Contains(r, "rainbow") {
		return rarityPrices["ultra rare"]
	}
	return defaultPrice
}
