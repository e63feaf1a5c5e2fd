package port

import (
	"context"

	"solana_analyst/internal/domain/entity"
)

// TokenEnricher resolves price and metadata for a mint. Failures degrade to zero price or nil metadata.
type TokenEnricher interface {
	Enrich(ctx context.Context, mint string) entity.Enrichment
}

// LogoResolver maps a mint to a logo URL. It always returns a URL.
type LogoResolver interface {
	LogoURL(mint string) string
}
