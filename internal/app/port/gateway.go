package port

import (
	"context"
	"encoding/json"
	"time"

	"solana_analyst/internal/domain/entity"
)

// WalletGateway reads account-level data from the blockchain-data gateway.
type WalletGateway interface {
	// GetBalance returns the native balance as a decimal SOL string.
	GetBalance(ctx context.Context, walletAddress string) (string, error)
	GetTokens(ctx context.Context, walletAddress string) ([]entity.GatewayToken, error)
	// GetTransfers returns at most limit transfer records, newest first, undecoded.
	GetTransfers(ctx context.Context, walletAddress string, limit int) ([]json.RawMessage, error)
}

// TokenGateway reads mint-level data from the blockchain-data gateway.
type TokenGateway interface {
	GetTokenPrice(ctx context.Context, mint string) (float64, error)
	GetTokenMetadata(ctx context.Context, mint string) (*entity.TokenMetadata, error)
	GetPriceHistory(ctx context.Context, mint string, from, to time.Time) ([]entity.HistoricalPrice, error)
}
