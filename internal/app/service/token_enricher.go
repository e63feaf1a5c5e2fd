package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/metrics"
)

// tokenEnricherImpl implements port.TokenEnricher.
type tokenEnricherImpl struct {
	gateway     port.TokenGateway
	nativePrice port.NativePriceSource
	priceCache  *cache.Cache
	logger      port.Logger
	metrics     *metrics.Metrics
}

// NewTokenEnricher creates an enricher over the gateway. nativePrice backs the native mint when
// its gateway price lookup fails. A priceCacheTTL of zero disables the token price memo.
func NewTokenEnricher(
	gateway port.TokenGateway,
	nativePrice port.NativePriceSource,
	priceCacheTTL time.Duration,
	logger port.Logger,
	m *metrics.Metrics,
) port.TokenEnricher {
	e := &tokenEnricherImpl{
		gateway:     gateway,
		nativePrice: nativePrice,
		logger:      logger,
		metrics:     m,
	}
	if priceCacheTTL > 0 {
		e.priceCache = cache.New(priceCacheTTL, 2*priceCacheTTL)
	}
	return e
}

// Enrich implements port.TokenEnricher. Price and metadata are fetched concurrently.
func (e *tokenEnricherImpl) Enrich(ctx context.Context, mint string) entity.Enrichment {
	var result entity.Enrichment
	var g errgroup.Group

	g.Go(func() error {
		result.Price = e.price(ctx, mint)
		return nil
	})
	g.Go(func() error {
		result.Metadata = e.metadata(ctx, mint)
		return nil
	})

	_ = g.Wait()
	return result
}

func (e *tokenEnricherImpl) price(ctx context.Context, mint string) float64 {
	if e.priceCache != nil {
		if cached, found := e.priceCache.Get(mint); found {
			return cached.(float64)
		}
	}

	price, err := e.gateway.GetTokenPrice(ctx, mint)
	if err == nil {
		if e.priceCache != nil {
			e.priceCache.SetDefault(mint, price)
		}
		return price
	}

	e.logger.Warn("Token price lookup failed", "mint", mint, "error", err)
	e.metrics.RecordEnrichmentFailure("price")

	if mint == entity.NativeMint && e.nativePrice != nil {
		native := e.nativePrice.GetNativePrice(ctx)
		e.logger.Debug("Using native price source for native mint", "price", native.Price, "source", native.Source)
		return native.Price
	}
	return 0
}

func (e *tokenEnricherImpl) metadata(ctx context.Context, mint string) *entity.TokenMetadata {
	meta, err := e.gateway.GetTokenMetadata(ctx, mint)
	if err != nil {
		e.logger.Warn("Token metadata lookup failed", "mint", mint, "error", err)
		e.metrics.RecordEnrichmentFailure("metadata")
		return nil
	}
	return meta
}
