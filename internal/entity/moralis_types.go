package entity

import (
	"encoding/json"

	domain "solana_analyst/internal/domain/entity"
)

// MoralisBalance is the /account/mainnet/{address}/balance response.
type MoralisBalance struct {
	Lamports domain.FlexString `json:"lamports"`
	Solana   domain.FlexString `json:"solana"`
}

// MoralisToken is one element of the /account/mainnet/{address}/tokens response.
type MoralisToken struct {
	AssociatedTokenAddress string            `json:"associatedTokenAddress"`
	Mint                   string            `json:"mint"`
	AmountRaw              domain.FlexString `json:"amountRaw"`
	Amount                 domain.FlexString `json:"amount"`
	Decimals               domain.FlexInt    `json:"decimals"`
	Name                   string            `json:"name"`
	Symbol                 string            `json:"symbol"`
	IsVerifiedContract     bool              `json:"isVerifiedContract"`
	PossibleSpam           bool              `json:"possibleSpam"`
}

// MoralisTransfers is the /account/mainnet/{address}/transfers envelope.
// Result is kept raw because the gateway may send null or an error object instead of an array.
type MoralisTransfers struct {
	Result json.RawMessage `json:"result"`
	Cursor *string         `json:"cursor"`
}

// MoralisTokenPrice is the /token/mainnet/{mint}/price response.
type MoralisTokenPrice struct {
	UsdPrice     *float64 `json:"usdPrice"`
	ExchangeName string   `json:"exchangeName"`
	PairAddress  string   `json:"pairAddress"`
}

// MoralisTokenMetadata is the /token/mainnet/{mint}/metadata response.
type MoralisTokenMetadata struct {
	Mint     string         `json:"mint"`
	Standard string         `json:"standard"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Logo     string         `json:"logo"`
	Decimals domain.FlexInt `json:"decimals"`
	Website  *string        `json:"website"`
	Links    *MoralisLinks  `json:"links"`
}

// MoralisLinks holds the project links of a mint.
type MoralisLinks struct {
	Website *string `json:"website"`
}

// MoralisPricePoint is one element of the /token/mainnet/{mint}/price/history response.
type MoralisPricePoint struct {
	Date     string            `json:"date"`
	UsdPrice domain.FlexString `json:"usdPrice"`
}
