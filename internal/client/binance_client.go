package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	bnentity "solana_analyst/internal/entity"
	"solana_analyst/internal/pkg/metrics"
)

// binanceClientImpl prices SOL from the Binance 24h ticker.
type binanceClientImpl struct {
	req     *requester
	baseURL string
	symbol  string
}

// NewBinanceClient creates the binance price source for symbol (e.g. SOLUSDT).
func NewBinanceClient(baseURL, symbol string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) port.PriceProvider {
	return &binanceClientImpl{
		req:     newRequester("binance", timeout, logger.Named("BinanceClient"), m),
		baseURL: strings.TrimRight(baseURL, "/"),
		symbol:  symbol,
	}
}

func (c *binanceClientImpl) Name() string { return "binance" }

// FetchNativePrice implements port.PriceProvider.
func (c *binanceClientImpl) FetchNativePrice(ctx context.Context) (entity.NativePrice, error) {
	requestURL := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", c.baseURL, url.QueryEscape(c.symbol))

	var ticker bnentity.BinanceTicker24h
	if err := c.req.getJSON(ctx, "ticker_24hr", requestURL, nil, &ticker); err != nil {
		return entity.NativePrice{}, err
	}

	price, err := strconv.ParseFloat(ticker.LastPrice, 64)
	if err != nil {
		return entity.NativePrice{}, fmt.Errorf("binance lastPrice %q: %w", ticker.LastPrice, err)
	}
	change, err := strconv.ParseFloat(ticker.PriceChangePercent, 64)
	if err != nil {
		return entity.NativePrice{}, fmt.Errorf("binance priceChangePercent %q: %w", ticker.PriceChangePercent, err)
	}
	return entity.NativePrice{Price: price, Change24h: change, Source: c.Name()}, nil
}
