package client

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	mentity "solana_analyst/internal/entity"
	"solana_analyst/internal/pkg/metrics"
)

const moralisNetwork = "mainnet"

// MoralisClient talks to the Moralis Solana gateway. It serves account lookups, mint lookups
// and the "moralis" native price source. All calls share one rate limiter.
type MoralisClient struct {
	req     *requester
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewMoralisClient creates a gateway client limited to rps requests per second.
func NewMoralisClient(baseURL, apiKey string, timeout time.Duration, rps float64, burst int, logger *zap.Logger, m *metrics.Metrics) *MoralisClient {
	named := logger.Named("MoralisClient")
	return &MoralisClient{
		req:     newRequester("moralis", timeout, named, m),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  named,
	}
}

func (c *MoralisClient) get(ctx context.Context, operation, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("moralis rate limiter: %w", err)
	}
	headers := map[string]string{"X-API-Key": c.apiKey}
	return c.req.getJSON(ctx, operation, c.baseURL+path, headers, out)
}

// GetBalance implements port.WalletGateway.
func (c *MoralisClient) GetBalance(ctx context.Context, walletAddress string) (string, error) {
	var body mentity.MoralisBalance
	path := fmt.Sprintf("/account/%s/%s/balance", moralisNetwork, url.PathEscape(walletAddress))
	if err := c.get(ctx, "balance", path, &body); err != nil {
		return "", err
	}
	if body.Solana == "" {
		return "0", nil
	}
	return body.Solana.String(), nil
}

// GetTokens implements port.WalletGateway.
func (c *MoralisClient) GetTokens(ctx context.Context, walletAddress string) ([]entity.GatewayToken, error) {
	var raw stdjson.RawMessage
	path := fmt.Sprintf("/account/%s/%s/tokens", moralisNetwork, url.PathEscape(walletAddress))
	if err := c.get(ctx, "tokens", path, &raw); err != nil {
		return nil, err
	}

	var wire []mentity.MoralisToken
	if err := json.Unmarshal(raw, &wire); err != nil {
		c.logger.Warn("Token list is not an array, treating as empty",
			zap.String("walletAddress", walletAddress), zap.Error(err))
		return []entity.GatewayToken{}, nil
	}

	tokens := make([]entity.GatewayToken, 0, len(wire))
	for _, t := range wire {
		token := entity.GatewayToken{
			AssociatedTokenAddress: t.AssociatedTokenAddress,
			Mint:                   t.Mint,
			AmountRaw:              t.AmountRaw.String(),
			Amount:                 t.Amount.String(),
			Name:                   t.Name,
			Symbol:                 t.Symbol,
			IsVerifiedContract:     t.IsVerifiedContract,
			PossibleSpam:           t.PossibleSpam,
		}
		if t.Decimals.Valid {
			d := int(t.Decimals.Value)
			token.Decimals = &d
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// GetTransfers implements port.WalletGateway.
func (c *MoralisClient) GetTransfers(ctx context.Context, walletAddress string, limit int) ([]stdjson.RawMessage, error) {
	var body mentity.MoralisTransfers
	path := fmt.Sprintf("/account/%s/%s/transfers?limit=%d", moralisNetwork, url.PathEscape(walletAddress), limit)
	if err := c.get(ctx, "transfers", path, &body); err != nil {
		return nil, err
	}

	var records []stdjson.RawMessage
	if len(body.Result) == 0 || json.Unmarshal(body.Result, &records) != nil || records == nil {
		return []stdjson.RawMessage{}, nil
	}
	return records, nil
}

// GetTokenPrice implements port.TokenGateway. A missing usdPrice is reported as 0.
func (c *MoralisClient) GetTokenPrice(ctx context.Context, mint string) (float64, error) {
	var body mentity.MoralisTokenPrice
	path := fmt.Sprintf("/token/%s/%s/price", moralisNetwork, url.PathEscape(mint))
	if err := c.get(ctx, "token_price", path, &body); err != nil {
		return 0, err
	}
	if body.UsdPrice == nil {
		return 0, nil
	}
	return *body.UsdPrice, nil
}

// GetTokenMetadata implements port.TokenGateway.
func (c *MoralisClient) GetTokenMetadata(ctx context.Context, mint string) (*entity.TokenMetadata, error) {
	var body mentity.MoralisTokenMetadata
	path := fmt.Sprintf("/token/%s/%s/metadata", moralisNetwork, url.PathEscape(mint))
	if err := c.get(ctx, "token_metadata", path, &body); err != nil {
		return nil, err
	}

	meta := &entity.TokenMetadata{
		Name:    body.Name,
		Symbol:  body.Symbol,
		Logo:    body.Logo,
		Website: body.Website,
	}
	if meta.Website == nil && body.Links != nil {
		meta.Website = body.Links.Website
	}
	if body.Decimals.Valid {
		d := int(body.Decimals.Value)
		meta.Decimals = &d
	}
	return meta, nil
}

// GetPriceHistory implements port.TokenGateway. Samples with unparseable dates or prices are dropped.
func (c *MoralisClient) GetPriceHistory(ctx context.Context, mint string, from, to time.Time) ([]entity.HistoricalPrice, error) {
	q := url.Values{}
	q.Set("chain", "solana")
	q.Set("to", isoMillis(to))
	q.Set("from", isoMillis(from))
	path := fmt.Sprintf("/token/%s/%s/price/history?%s", moralisNetwork, url.PathEscape(mint), q.Encode())

	var points []mentity.MoralisPricePoint
	if err := c.get(ctx, "price_history", path, &points); err != nil {
		return nil, err
	}

	history := make([]entity.HistoricalPrice, 0, len(points))
	for _, p := range points {
		ts, err := time.Parse(time.RFC3339Nano, p.Date)
		if err != nil {
			c.logger.Debug("Skipping history point with bad date", zap.String("date", p.Date))
			continue
		}
		price, err := strconv.ParseFloat(p.UsdPrice.String(), 64)
		if err != nil {
			c.logger.Debug("Skipping history point with bad price", zap.String("usdPrice", p.UsdPrice.String()))
			continue
		}
		history = append(history, entity.HistoricalPrice{Date: ts.UnixMilli(), Price: price})
	}
	return history, nil
}

// NativePriceSource returns the "moralis" price source: the gateway price of the native mint, with no 24h change.
func (c *MoralisClient) NativePriceSource() port.PriceProvider {
	return &moralisPriceSource{client: c}
}

type moralisPriceSource struct {
	client *MoralisClient
}

func (s *moralisPriceSource) Name() string { return "moralis" }

func (s *moralisPriceSource) FetchNativePrice(ctx context.Context) (entity.NativePrice, error) {
	if s.client.apiKey == "" {
		return entity.NativePrice{}, port.ErrSourceDisabled
	}
	var body mentity.MoralisTokenPrice
	path := fmt.Sprintf("/token/%s/%s/price", moralisNetwork, entity.NativeMint)
	if err := s.client.get(ctx, "native_price", path, &body); err != nil {
		return entity.NativePrice{}, err
	}
	if body.UsdPrice == nil {
		return entity.NativePrice{}, fmt.Errorf("moralis native price response has no usdPrice")
	}
	return entity.NativePrice{Price: *body.UsdPrice, Change24h: 0, Source: s.Name()}, nil
}

func isoMillis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
