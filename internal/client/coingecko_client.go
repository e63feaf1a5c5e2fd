package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	cgentity "solana_analyst/internal/entity"
	"solana_analyst/internal/pkg/metrics"
)

const coinGeckoSolanaID = "solana"

// coinGeckoClientImpl prices SOL from the free CoinGecko simple price endpoint.
type coinGeckoClientImpl struct {
	req     *requester
	baseURL string
	apiKey  string
}

// NewCoinGeckoClient creates the coingecko price source.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) port.PriceProvider {
	return &coinGeckoClientImpl{
		req:     newRequester("coingecko", timeout, logger.Named("CoinGeckoClient"), m),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *coinGeckoClientImpl) Name() string { return "coingecko" }

// FetchNativePrice implements port.PriceProvider.
func (c *coinGeckoClientImpl) FetchNativePrice(ctx context.Context) (entity.NativePrice, error) {
	requestURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true", c.baseURL, coinGeckoSolanaID)

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"x-cg-demo-api-key": c.apiKey}
	}

	var body cgentity.CoinGeckoSimplePrice
	if err := c.req.getJSON(ctx, "simple_price", requestURL, headers, &body); err != nil {
		return entity.NativePrice{}, err
	}

	quote, ok := body[coinGeckoSolanaID]
	if !ok || quote.USD == nil {
		return entity.NativePrice{}, errors.New("coingecko response has no solana.usd quote")
	}

	price := entity.NativePrice{Price: *quote.USD, Source: c.Name()}
	if quote.USD24hChange != nil {
		price.Change24h = *quote.USD24hChange
	}
	return price, nil
}
