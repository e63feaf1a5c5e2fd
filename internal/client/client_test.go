package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/metrics"
)

// newUpstream serves fixed bodies by request path and records the last request.
func newUpstream(t *testing.T, routes map[string]string, lastReq **http.Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastReq != nil {
			*lastReq = r.Clone(context.Background())
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoinGeckoClient_FetchNativePrice(t *testing.T) {
	var last *http.Request
	srv := newUpstream(t, map[string]string{
		"/simple/price": `{"solana":{"usd":142.5,"usd_24h_change":-3.25}}`,
	}, &last)

	c := NewCoinGeckoClient(srv.URL, "demo-key", time.Second, zap.NewNop(), nil)
	price, err := c.FetchNativePrice(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "coingecko", c.Name())
	assert.Equal(t, 142.5, price.Price)
	assert.Equal(t, -3.25, price.Change24h)
	assert.Equal(t, "solana", last.URL.Query().Get("ids"))
	assert.Equal(t, "true", last.URL.Query().Get("include_24hr_change"))
	assert.Equal(t, "demo-key", last.Header.Get("x-cg-demo-api-key"))
}

func TestCoinGeckoClient_MissingQuoteIsError(t *testing.T) {
	srv := newUpstream(t, map[string]string{"/simple/price": `{}`}, nil)

	_, err := NewCoinGeckoClient(srv.URL, "", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.Error(t, err)
}

func TestCoinGeckoClient_MissingChangeDefaultsToZero(t *testing.T) {
	srv := newUpstream(t, map[string]string{"/simple/price": `{"solana":{"usd":99}}`}, nil)

	price, err := NewCoinGeckoClient(srv.URL, "", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99.0, price.Price)
	assert.Zero(t, price.Change24h)
}

func TestBinanceClient_FetchNativePrice(t *testing.T) {
	var last *http.Request
	srv := newUpstream(t, map[string]string{
		"/api/v3/ticker/24hr": `{"symbol":"SOLUSDT","lastPrice":"150.12000000","priceChangePercent":"2.500"}`,
	}, &last)

	price, err := NewBinanceClient(srv.URL, "SOLUSDT", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.12, price.Price)
	assert.Equal(t, 2.5, price.Change24h)
	assert.Equal(t, "SOLUSDT", last.URL.Query().Get("symbol"))
}

func TestBinanceClient_UnparseablePrice(t *testing.T) {
	srv := newUpstream(t, map[string]string{
		"/api/v3/ticker/24hr": `{"lastPrice":"n/a","priceChangePercent":"1"}`,
	}, nil)

	_, err := NewBinanceClient(srv.URL, "SOLUSDT", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.Error(t, err)
}

func TestRequester_AnyTwoHundredIsSuccess(t *testing.T) {
	tests := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusCreated, false},
		{http.StatusNonAuthoritativeInfo, false},
		{http.StatusMultipleChoices, true},
		{http.StatusTooManyRequests, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"lastPrice":"99.5","priceChangePercent":"0"}`))
			}))
			defer srv.Close()

			price, err := NewBinanceClient(srv.URL, "SOLUSDT", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
			if tt.wantErr {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.status, statusErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 99.5, price.Price)
		})
	}
}

func TestRequester_StatusErrorAndMetrics(t *testing.T) {
	srv := newUpstream(t, map[string]string{}, nil)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	_, err := NewBinanceClient(srv.URL, "SOLUSDT", time.Second, zap.NewNop(), m).FetchNativePrice(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "binance", statusErr.Service)

	expected := `
# HELP upstream_calls_total Total number of outbound calls to third-party APIs by service, operation and status
# TYPE upstream_calls_total counter
upstream_calls_total{operation="ticker_24hr",service="binance",status="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "upstream_calls_total"))
}

func TestRequester_CancelledContext(t *testing.T) {
	srv := newUpstream(t, map[string]string{"/simple/price": `{"solana":{"usd":1}}`}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCoinGeckoClient(srv.URL, "", time.Second, zap.NewNop(), nil).FetchNativePrice(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

const testWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func newTestMoralis(t *testing.T, routes map[string]string, apiKey string, lastReq **http.Request) *MoralisClient {
	t.Helper()
	srv := newUpstream(t, routes, lastReq)
	return NewMoralisClient(srv.URL, apiKey, time.Second, 100, 10, zap.NewNop(), nil)
}

func TestMoralisClient_GetBalance(t *testing.T) {
	var last *http.Request
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/balance": `{"lamports":"1500000000","solana":"1.5"}`,
	}, "secret", &last)

	balance, err := c.GetBalance(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, "1.5", balance)
	assert.Equal(t, "secret", last.Header.Get("X-API-Key"))
}

func TestMoralisClient_GetBalanceMissingField(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/balance": `{"lamports":"0"}`,
	}, "secret", nil)

	balance, err := c.GetBalance(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, "0", balance)
}

func TestMoralisClient_GetTokens(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/tokens": `[
			{"associatedTokenAddress":"ata1","mint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","amountRaw":"2500000","amount":"2.5","decimals":"6","name":"USD Coin","symbol":"USDC","isVerifiedContract":true,"possibleSpam":false},
			{"mint":"mintB","amount":3,"decimals":null,"possibleSpam":true}
		]`,
	}, "secret", nil)

	tokens, err := c.GetTokens(context.Background(), testWallet)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "2.5", tokens[0].Amount)
	assert.Equal(t, "USDC", tokens[0].Symbol)
	require.NotNil(t, tokens[0].Decimals)
	assert.Equal(t, 6, *tokens[0].Decimals)
	assert.True(t, tokens[0].IsVerifiedContract)
	assert.False(t, tokens[0].PossibleSpam)

	assert.Equal(t, "3", tokens[1].Amount)
	assert.Nil(t, tokens[1].Decimals)
	assert.True(t, tokens[1].PossibleSpam)
}

func TestMoralisClient_GetTokensNonArrayIsEmpty(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/tokens": `{"message":"weird"}`,
	}, "secret", nil)

	tokens, err := c.GetTokens(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestMoralisClient_GetTransfers(t *testing.T) {
	var last *http.Request
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/transfers": `{"result":[{"type":"transfer","amount":"1"},{"signature":"abc"}],"cursor":null}`,
	}, "secret", &last)

	transfers, err := c.GetTransfers(context.Background(), testWallet, 10)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.JSONEq(t, `{"signature":"abc"}`, string(transfers[1]))
	assert.Equal(t, "10", last.URL.Query().Get("limit"))
}

func TestMoralisClient_GetTransfersMissingResult(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/account/mainnet/" + testWallet + "/transfers": `{"result":null}`,
	}, "secret", nil)

	transfers, err := c.GetTransfers(context.Background(), testWallet, 10)
	require.NoError(t, err)
	assert.NotNil(t, transfers)
	assert.Empty(t, transfers)
}

func TestMoralisClient_GetTokenPrice(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/token/mainnet/mintA/price": `{"usdPrice":0.9998}`,
		"/token/mainnet/mintB/price": `{"exchangeName":"none"}`,
	}, "secret", nil)

	price, err := c.GetTokenPrice(context.Background(), "mintA")
	require.NoError(t, err)
	assert.Equal(t, 0.9998, price)

	price, err = c.GetTokenPrice(context.Background(), "mintB")
	require.NoError(t, err)
	assert.Zero(t, price)

	_, err = c.GetTokenPrice(context.Background(), "mintC")
	require.Error(t, err)
}

func TestMoralisClient_GetTokenMetadata(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/token/mainnet/mintA/metadata": `{"name":"Alpha","symbol":"ALP","logo":"https://logo/a.png","decimals":"9","links":{"website":"https://alpha.example"}}`,
		"/token/mainnet/mintB/metadata": `{"name":"Beta","website":"https://beta.example","links":{"website":"https://other.example"}}`,
	}, "secret", nil)

	meta, err := c.GetTokenMetadata(context.Background(), "mintA")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", meta.Name)
	assert.Equal(t, "https://logo/a.png", meta.Logo)
	require.NotNil(t, meta.Decimals)
	assert.Equal(t, 9, *meta.Decimals)
	require.NotNil(t, meta.Website)
	assert.Equal(t, "https://alpha.example", *meta.Website)

	meta, err = c.GetTokenMetadata(context.Background(), "mintB")
	require.NoError(t, err)
	assert.Nil(t, meta.Decimals)
	require.NotNil(t, meta.Website)
	assert.Equal(t, "https://beta.example", *meta.Website)
}

func TestMoralisClient_GetPriceHistory(t *testing.T) {
	var last *http.Request
	c := newTestMoralis(t, map[string]string{
		"/token/mainnet/mintA/price/history": `[
			{"date":"2024-03-01T00:00:00.000Z","usdPrice":"1.25"},
			{"date":"garbage","usdPrice":"2"},
			{"date":"2024-03-02T00:00:00Z","usdPrice":1.5}
		]`,
	}, "secret", &last)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 12, 30, 0, 0, time.UTC)
	history, err := c.GetPriceHistory(context.Background(), "mintA", from, to)
	require.NoError(t, err)

	assert.Equal(t, []entity.HistoricalPrice{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), Price: 1.25},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), Price: 1.5},
	}, history)

	q := last.URL.Query()
	assert.Equal(t, "solana", q.Get("chain"))
	assert.Equal(t, "2024-02-01T00:00:00.000Z", q.Get("from"))
	assert.Equal(t, "2024-03-02T12:30:00.000Z", q.Get("to"))
}

func TestMoralisNativePriceSource(t *testing.T) {
	c := newTestMoralis(t, map[string]string{
		"/token/mainnet/" + entity.NativeMint + "/price": `{"usdPrice":148.2}`,
	}, "secret", nil)

	src := c.NativePriceSource()
	price, err := src.FetchNativePrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "moralis", src.Name())
	assert.Equal(t, 148.2, price.Price)
	assert.Zero(t, price.Change24h)
}

func TestMoralisNativePriceSource_DisabledWithoutKey(t *testing.T) {
	c := newTestMoralis(t, map[string]string{}, "", nil)

	_, err := c.NativePriceSource().FetchNativePrice(context.Background())
	assert.ErrorIs(t, err, port.ErrSourceDisabled)
}

func TestDEXScreenerClient_PrefersStablecoinPair(t *testing.T) {
	var last *http.Request
	srv := newUpstream(t, map[string]string{
		"/tokens/v1/solana/" + entity.NativeMint: `[
			{"pairAddress":"p1","baseToken":{"address":"` + entity.NativeMint + `"},"quoteToken":{"symbol":"RAY"},"priceUsd":"151.00","liquidity":{"usd":9000000},"priceChange":{"h24":1.1}},
			{"pairAddress":"p2","baseToken":{"address":"` + entity.NativeMint + `"},"quoteToken":{"symbol":"USDC"},"priceUsd":"150.50","liquidity":{"usd":500000},"priceChange":{"h24":2.2}},
			{"pairAddress":"p3","baseToken":{"address":"` + entity.NativeMint + `"},"quoteToken":{"symbol":"USDT"},"priceUsd":"150.40","liquidity":{"usd":100},"priceChange":{"h24":3.3}},
			{"pairAddress":"p4","baseToken":{"address":"other"},"quoteToken":{"symbol":"USDC"},"priceUsd":"1.00","liquidity":{"usd":99999999}}
		]`,
	}, &last)

	c := NewDEXScreenerClient(srv.URL, "solana", time.Second, zap.NewNop(), nil)
	price, err := c.FetchNativePrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dexscreener", c.Name())
	assert.Equal(t, 150.5, price.Price)
	assert.Equal(t, 2.2, price.Change24h)
}

func TestDEXScreenerClient_WrappedResponse(t *testing.T) {
	srv := newUpstream(t, map[string]string{
		"/tokens/v1/solana/" + entity.NativeMint: `{"schemaVersion":"1.0.0","pairs":[
			{"baseToken":{"address":"` + entity.NativeMint + `"},"quoteToken":{"symbol":"JUP"},"priceUsd":"149.9","priceChange":{"h24":-0.5}}
		]}`,
	}, nil)

	price, err := NewDEXScreenerClient(srv.URL, "solana", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 149.9, price.Price)
	assert.Equal(t, -0.5, price.Change24h)
}

func TestDEXScreenerClient_NoPairs(t *testing.T) {
	srv := newUpstream(t, map[string]string{"/tokens/v1/solana/" + entity.NativeMint: `[]`}, nil)

	_, err := NewDEXScreenerClient(srv.URL, "solana", time.Second, zap.NewNop(), nil).FetchNativePrice(context.Background())
	require.Error(t, err)
}
