package port

import (
	"context"

	"solana_analyst/internal/domain/entity"
)

// SupplyProvider reads network-wide SOL supply.
type SupplyProvider interface {
	GetSupply(ctx context.Context) (entity.Supply, error)
}
