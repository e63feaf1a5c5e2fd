package service

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/metrics"
)

const fallbackSource = "fallback"

// Price source outcomes reported to metrics.
const (
	outcomeSuccess = "success"
	outcomeCached  = "cached"
	outcomeFailure = "failure"
	outcomeSkipped = "skipped"
)

// priceServiceImpl implements port.NativePriceSource as an ordered cascade of providers.
type priceServiceImpl struct {
	providers     []port.PriceProvider
	cache         *cache.Cache
	fallbackPrice float64
	logger        port.Logger
	metrics       *metrics.Metrics
}

// NewPriceService creates the native price cascade. Providers are tried in slice order.
// A cacheTTL of zero disables memoisation of provider results.
func NewPriceService(
	providers []port.PriceProvider,
	cacheTTL time.Duration,
	fallbackPrice float64,
	logger port.Logger,
	m *metrics.Metrics,
) port.NativePriceSource {
	s := &priceServiceImpl{
		fallbackPrice: fallbackPrice,
		logger:        logger,
		metrics:       m,
	}
	for _, p := range providers {
		if p != nil {
			s.providers = append(s.providers, p)
		}
	}
	if cacheTTL > 0 {
		s.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return s
}

// GetNativePrice implements port.NativePriceSource.
func (s *priceServiceImpl) GetNativePrice(ctx context.Context) entity.NativePrice {
	for _, p := range s.providers {
		name := p.Name()

		if s.cache != nil {
			if cached, found := s.cache.Get(name); found {
				s.metrics.RecordPriceSource(name, outcomeCached)
				return cached.(entity.NativePrice)
			}
		}

		price, err := p.FetchNativePrice(ctx)
		if errors.Is(err, port.ErrSourceDisabled) {
			s.logger.Debug("Price source not configured, skipping", "source", name)
			s.metrics.RecordPriceSource(name, outcomeSkipped)
			continue
		}
		if err != nil {
			s.logger.Warn("Price source failed, trying next", "source", name, "error", err)
			s.metrics.RecordPriceSource(name, outcomeFailure)
			continue
		}

		price.Source = name
		s.metrics.RecordPriceSource(name, outcomeSuccess)
		if s.cache != nil {
			s.cache.SetDefault(name, price)
		}
		s.logger.Debug("Resolved native price", "source", name, "price", price.Price)
		return price
	}

	s.logger.Warn("All price sources failed, using fallback price", "price", s.fallbackPrice)
	s.metrics.RecordPriceFallback()
	return entity.NativePrice{Price: s.fallbackPrice, Change24h: 0, Source: fallbackSource}
}
