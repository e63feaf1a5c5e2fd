package port

import (
	"context"
	"errors"

	"solana_analyst/internal/domain/entity"
)

// PriceProvider is one upstream in the native price cascade.
type PriceProvider interface {
	// Name identifies the source in logs, metrics and configuration.
	Name() string
	FetchNativePrice(ctx context.Context) (entity.NativePrice, error)
}

// NativePriceSource resolves the SOL/USD price. It never fails; callers always get a usable price.
type NativePriceSource interface {
	GetNativePrice(ctx context.Context) entity.NativePrice
}

// ErrSourceDisabled is returned by a PriceProvider that is not configured (e.g. missing API key).
// The cascade skips such sources without counting them as failures.
var ErrSourceDisabled = errors.New("price source disabled")
