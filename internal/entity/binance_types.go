package entity

// BinanceTicker24h is the /api/v3/ticker/24hr response for one symbol.
type BinanceTicker24h struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}
