package catalog

// Wire types for the card-catalog API (v2). Only the fields the shop uses
// are mapped; the API returns far more.

type Set struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Series      string    `json:"series"`
	Total       int       `json:"total"`
	ReleaseDate string    `json:"releaseDate"`
	Images      SetImages `json:"images"`
}

type SetImages struct {
	Symbol string `json:"symbol"`
	Logo   string `json:"logo"`
}

type APICard struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Number     string      `json:"number"`
	Rarity     string      `json:"rarity"`
	Set        CardSet     `json:"set"`
	Images     CardImages  `json:"images"`
	Cardmarket *Cardmarket `json:"cardmarket,omitempty"`
	TCGPlayer  *TCGPlayer  `json:"tcgplayer,omitempty"`
}

type CardSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CardImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type Cardmarket struct {
	Prices CardmarketPrices `json:"prices"`
}

type CardmarketPrices struct {
	AverageSellPrice float64 `json:"averageSellPrice"`
	TrendPrice       float64 `json:"trendPrice"`
}

type TCGPlayer struct {
	Prices map[string]TCGPlayerPrice `json:"prices"`
}

type TCGPlayerPrice struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	Market float64 `json:"market"`
}

type setsResponse struct {
	Data []Set `json:"data"`
}

type cardsResponse struct {
	Data       []APICard `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalCount int       `json:"totalCount"`
}
