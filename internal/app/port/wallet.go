package port

import (
	"context"

	"solana_analyst/internal/domain/entity"
)

// WalletSnapshotService assembles a wallet snapshot. An empty tokenAddress requests portfolio history.
type WalletSnapshotService interface {
	Aggregate(ctx context.Context, walletAddress, tokenAddress string) (*entity.WalletSnapshot, error)
}

// HistorySynthesizer produces placeholder portfolio value curves.
type HistorySynthesizer interface {
	Synthesize(currentTotal float64) []entity.PortfolioPoint
}

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// WalletProvider lists the wallets the watch loop polls.
type WalletProvider interface {
	GetWallets() ([]string, error)
}
