package entity

import "encoding/json"

// WalletSnapshot is the point-in-time view of one wallet, rebuilt on every request.
type WalletSnapshot struct {
	Balance  string         `json:"balance"`
	SolPrice float64        `json:"solPrice"`
	Tokens   []TokenHolding `json:"tokens"`
	// Transactions are gateway transfer records passed through untouched, newest first.
	Transactions     []json.RawMessage `json:"transactions"`
	HistoricalPrices []HistoricalPrice `json:"historicalPrices"`
	PortfolioHistory []PortfolioPoint  `json:"portfolioHistory"`
	TotalValue       float64           `json:"totalValue"`
}
