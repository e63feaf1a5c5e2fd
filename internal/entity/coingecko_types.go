package entity

// CoinGeckoSimplePrice is the /simple/price response keyed by coin id.
type CoinGeckoSimplePrice map[string]CoinGeckoQuote

// CoinGeckoQuote is one coin's USD quote.
type CoinGeckoQuote struct {
	USD          *float64 `json:"usd"`
	USD24hChange *float64 `json:"usd_24h_change"`
}
