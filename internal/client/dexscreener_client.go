package client

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	dexscreener_entity "solana_analyst/internal/entity"
	"solana_analyst/internal/pkg/metrics"
	"solana_analyst/internal/pkg/utils"
)

var stablecoinSymbols = map[string]struct{}{
	"USDC":  {},
	"USDT":  {},
	"PYUSD": {},
	"USDS":  {},
}

// dexScreenerClientImpl prices wrapped SOL from its most liquid DEX pair.
type dexScreenerClientImpl struct {
	req     *requester
	baseURL string
	chainID string
	logger  *zap.Logger
}

// NewDEXScreenerClient creates the "dexscreener" native price source.
func NewDEXScreenerClient(baseURL, chainID string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) port.PriceProvider {
	named := logger.Named("DEXScreenerClient")
	return &dexScreenerClientImpl{
		req:     newRequester("dexscreener", timeout, named, m),
		baseURL: strings.TrimRight(baseURL, "/"),
		chainID: chainID,
		logger:  named,
	}
}

func (c *dexScreenerClientImpl) Name() string { return "dexscreener" }

// FetchNativePrice implements port.PriceProvider.
func (c *dexScreenerClientImpl) FetchNativePrice(ctx context.Context) (entity.NativePrice, error) {
	pairs, err := c.getTokenPairs(ctx, entity.NativeMint)
	if err != nil {
		return entity.NativePrice{}, err
	}

	best := c.selectBestPair(pairs, entity.NativeMint)
	if best == nil {
		return entity.NativePrice{}, fmt.Errorf("dexscreener returned no usable pair for %s", entity.NativeMint)
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return entity.NativePrice{}, fmt.Errorf("dexscreener priceUsd %q: %w", best.PriceUsd, err)
	}
	return entity.NativePrice{Price: price, Change24h: best.PriceChange.H24, Source: c.Name()}, nil
}

func (c *dexScreenerClientImpl) getTokenPairs(ctx context.Context, tokenAddress string) ([]dexscreener_entity.PairData, error) {
	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, c.chainID, tokenAddress)

	var raw stdjson.RawMessage
	if err := c.req.getJSON(ctx, "token_pairs", requestURL, nil, &raw); err != nil {
		return nil, err
	}

	var wrapper dexscreener_entity.DEXTokenPair
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Pairs != nil {
		c.logger.Debug("Decoded DEX Screener response (wrapped object)", zap.Int("pairCount", len(wrapper.Pairs)))
		return wrapper.Pairs, nil
	}

	var directPairs []dexscreener_entity.PairData
	if err := json.Unmarshal(raw, &directPairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}
	if len(directPairs) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with an empty array of pairs", zap.String("url", requestURL))
	}
	return directPairs, nil
}

// selectBestPair prefers the most liquid stablecoin-quoted pair, then the most liquid pair overall.
func (c *dexScreenerClientImpl) selectBestPair(pairs []dexscreener_entity.PairData, baseTokenAddress string) *dexscreener_entity.PairData {
	var bestOverallPair *dexscreener_entity.PairData
	var bestStablecoinPair *dexscreener_entity.PairData

	liquidity := func(p *dexscreener_entity.PairData) float64 {
		return utils.SafeDerefFloat64(p.Liquidity, func(l dexscreener_entity.DEXLiquidity) float64 { return l.Usd })
	}

	for i := range pairs {
		pair := &pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		if _, isStablecoin := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]; isStablecoin {
			if bestStablecoinPair == nil || liquidity(pair) > liquidity(bestStablecoinPair) {
				bestStablecoinPair = pair
			}
		}
		if bestOverallPair == nil || liquidity(pair) > liquidity(bestOverallPair) {
			bestOverallPair = pair
		}
	}

	if bestStablecoinPair != nil {
		c.logger.Debug("Selected price from stablecoin pair",
			zap.String("pairAddress", bestStablecoinPair.PairAddress),
			zap.String("priceUsd", bestStablecoinPair.PriceUsd),
			zap.Float64("liquidityUsd", liquidity(bestStablecoinPair)),
			zap.String("quoteToken", bestStablecoinPair.QuoteToken.Symbol))
		return bestStablecoinPair
	}
	if bestOverallPair != nil {
		c.logger.Debug("Selected price from highest liquidity pair",
			zap.String("pairAddress", bestOverallPair.PairAddress),
			zap.String("priceUsd", bestOverallPair.PriceUsd),
			zap.Float64("liquidityUsd", liquidity(bestOverallPair)),
			zap.String("quoteToken", bestOverallPair.QuoteToken.Symbol))
		return bestOverallPair
	}

	c.logger.Warn("No suitable price found from pairs",
		zap.String("baseTokenAddress", baseTokenAddress),
		zap.Int("evaluatedPairCount", len(pairs)))
	return nil
}
