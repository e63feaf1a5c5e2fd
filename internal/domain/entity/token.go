package entity

// NativeMint is the reserved wrapped-SOL mint that stands for the native asset.
const NativeMint = "So11111111111111111111111111111111111111112"

// Placeholder labels used when neither the gateway nor metadata name a token.
const (
	UnknownTokenName   = "Unknown Token"
	UnknownTokenSymbol = "???"
)

// GatewayToken is a raw SPL token position as reported by the data gateway.
type GatewayToken struct {
	AssociatedTokenAddress string
	Mint                   string
	AmountRaw              string
	Amount                 string
	Decimals               *int
	Name                   string
	Symbol                 string
	IsVerifiedContract     bool
	PossibleSpam           bool
}

// TokenMetadata is the optional descriptive data for a mint.
type TokenMetadata struct {
	Name     string
	Symbol   string
	Logo     string
	Decimals *int
	Website  *string
}

// Enrichment is the price and metadata resolved for one mint.
// Metadata is nil when the metadata lookup failed.
type Enrichment struct {
	Price    float64
	Metadata *TokenMetadata
}

// TokenHolding is one token row of a wallet snapshot.
// UsdValue is always derived from Amount and TokenPrice.
type TokenHolding struct {
	AssociatedTokenAddress string  `json:"associatedTokenAddress,omitempty"`
	Mint                   string  `json:"mint"`
	AmountRaw              string  `json:"amountRaw,omitempty"`
	Amount                 string  `json:"amount"`
	Name                   string  `json:"name"`
	Symbol                 string  `json:"symbol"`
	Decimals               int     `json:"decimals"`
	TokenPrice             string  `json:"tokenPrice"`
	UsdValue               string  `json:"usdValue"`
	SolValue               string  `json:"solValue"`
	LogoURL                string  `json:"logoUrl"`
	Website                *string `json:"website"`
	IsVerifiedContract     bool    `json:"isVerifiedContract"`
	PossibleSpam           bool    `json:"possibleSpam"`
}
