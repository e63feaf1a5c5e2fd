package entity

// NativePrice is the SOL/USD spot price and its 24h change in percent.
type NativePrice struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	// Source names the provider that answered, or "fallback".
	Source string `json:"-"`
}

// HistoricalPrice is one gateway price history sample. Date is epoch milliseconds.
type HistoricalPrice struct {
	Date  int64   `json:"date"`
	Price float64 `json:"price"`
}

// PortfolioPoint is one synthesized portfolio value sample. Date is YYYY-MM-DD.
type PortfolioPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Supply is the network-wide SOL supply in lamports.
type Supply struct {
	Total          uint64 `json:"total"`
	Circulating    uint64 `json:"circulating"`
	NonCirculating uint64 `json:"nonCirculating"`
}
