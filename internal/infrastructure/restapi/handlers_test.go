package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solana_analyst/internal/app/service"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/infrastructure/solanarpc"
	"solana_analyst/internal/pkg/apperrors"
	"solana_analyst/internal/pkg/metrics"
)

const (
	testWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	testToken  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

type fakeSnapshots struct {
	snapshot  *entity.WalletSnapshot
	err       error
	gotWallet string
	gotToken  string
	calls     int
}

func (f *fakeSnapshots) Aggregate(_ context.Context, wallet, token string) (*entity.WalletSnapshot, error) {
	f.calls++
	f.gotWallet, f.gotToken = wallet, token
	return f.snapshot, f.err
}

type fakePrices struct{ price entity.NativePrice }

func (f fakePrices) GetNativePrice(context.Context) entity.NativePrice { return f.price }

type fakeSupply struct {
	supply entity.Supply
	err    error
}

func (f fakeSupply) GetSupply(context.Context) (entity.Supply, error) { return f.supply, f.err }

type fakeChat struct {
	reply entity.ChatMessage
	err   error
	got   entity.ChatRequest
}

func (f *fakeChat) Respond(_ context.Context, req entity.ChatRequest) (entity.ChatMessage, error) {
	f.got = req
	return f.reply, f.err
}

type testDeps struct {
	snapshots *fakeSnapshots
	prices    fakePrices
	supply    fakeSupply
	chat      *fakeChat
}

func newTestRouter(t *testing.T, deps *testDeps, opts RouterOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.snapshots == nil {
		deps.snapshots = &fakeSnapshots{}
	}
	if deps.chat == nil {
		deps.chat = &fakeChat{}
	}
	h := NewHandler(deps.snapshots, deps.prices, deps.supply, deps.chat, zap.NewNop())
	return SetupRouter(h, zap.NewNop(), opts)
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWalletData_OK(t *testing.T) {
	deps := &testDeps{snapshots: &fakeSnapshots{snapshot: &entity.WalletSnapshot{
		Balance:          "1.5",
		SolPrice:         100,
		Tokens:           []entity.TokenHolding{},
		Transactions:     []json.RawMessage{json.RawMessage(`{"signature":"abc"}`)},
		PortfolioHistory: []entity.PortfolioPoint{{Date: "2024-03-31", Value: 150}},
		TotalValue:       150,
	}}}
	router := newTestRouter(t, deps, RouterOptions{})

	w := doRequest(router, http.MethodPost, "/api/wallet-data", `{"walletAddress":"`+testWallet+`","tokenAddress":"`+testToken+`"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"balance":"1.5","solPrice":100,"tokens":[],
		"transactions":[{"signature":"abc"}],
		"historicalPrices":null,
		"portfolioHistory":[{"date":"2024-03-31","value":150}],
		"totalValue":150
	}`, w.Body.String())
	assert.Equal(t, testWallet, deps.snapshots.gotWallet)
	assert.Equal(t, testToken, deps.snapshots.gotToken)
}

func TestWalletData_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed json", body: `{"walletAddress":`, want: `{"error":"Invalid request body"}`},
		{name: "missing address", body: `{}`, want: `{"error":"Invalid wallet address"}`},
		{name: "evm address", body: `{"walletAddress":"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"}`, want: `{"error":"Invalid wallet address"}`},
		{name: "bad token", body: `{"walletAddress":"` + testWallet + `","tokenAddress":"nope"}`, want: `{"error":"Invalid wallet address"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := &testDeps{}
			router := newTestRouter(t, deps, RouterOptions{})

			w := doRequest(router, http.MethodPost, "/api/wallet-data", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
			assert.Zero(t, deps.snapshots.calls)
		})
	}
}

func TestWalletData_UpstreamFailure(t *testing.T) {
	for name, err := range map[string]error{
		"categorized":   apperrors.NewUpstreamError(service.WalletDataErrorMessage, errors.New("moralis 401: invalid key")),
		"uncategorized": errors.New("boom"),
	} {
		t.Run(name, func(t *testing.T) {
			router := newTestRouter(t, &testDeps{snapshots: &fakeSnapshots{err: err}}, RouterOptions{})

			w := doRequest(router, http.MethodPost, "/api/wallet-data", `{"walletAddress":"`+testWallet+`"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"Failed to fetch wallet data"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "invalid key")
		})
	}
}

func TestSolanaPrice(t *testing.T) {
	router := newTestRouter(t, &testDeps{prices: fakePrices{price: entity.NativePrice{Price: 80, Change24h: 0, Source: "fallback"}}}, RouterOptions{})

	w := doRequest(router, http.MethodGet, "/api/solana-price", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"price":80,"change24h":0}`, w.Body.String())
}

func TestSolanaSupply(t *testing.T) {
	router := newTestRouter(t, &testDeps{supply: fakeSupply{supply: entity.Supply{Total: 10, Circulating: 7, NonCirculating: 3}}}, RouterOptions{})

	w := doRequest(router, http.MethodGet, "/api/solana-supply", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":10,"circulating":7,"nonCirculating":3}`, w.Body.String())
}

func TestSolanaSupply_Failure(t *testing.T) {
	err := apperrors.NewUpstreamError(solanarpc.SupplyErrorMessage, errors.New("rpc down"))
	router := newTestRouter(t, &testDeps{supply: fakeSupply{err: err}}, RouterOptions{})

	w := doRequest(router, http.MethodGet, "/api/solana-supply", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch Solana supply data"}`, w.Body.String())
}

func TestChat_OK(t *testing.T) {
	chat := &fakeChat{reply: entity.ChatMessage{Role: "assistant", Content: "Hold."}}
	router := newTestRouter(t, &testDeps{chat: chat}, RouterOptions{})

	body := `{
		"messages":[{"role":"user","content":"Thoughts?"}],
		"walletData":{"balance":1.25,"solPrice":150,"tokens":[{"name":"USD Coin","amount":10,"usdValue":"10.00"}],"transactions":[{"type":"transfer","blockTime":"1710000000"}]},
		"walletAddress":"` + testWallet + `"
	}`
	w := doRequest(router, http.MethodPost, "/api/chat", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":{"role":"assistant","content":"Hold."}}`, w.Body.String())

	require.NotNil(t, chat.got.WalletData)
	assert.Equal(t, "1.25", chat.got.WalletData.Balance.String())
	assert.Equal(t, "10", chat.got.WalletData.Tokens[0].Amount.String())
	assert.Equal(t, int64(1710000000), chat.got.WalletData.Transactions[0].BlockTime.Value)
	assert.Equal(t, testWallet, chat.got.WalletAddress)
}

func TestChat_Failures(t *testing.T) {
	router := newTestRouter(t, &testDeps{chat: &fakeChat{err: apperrors.NewUpstreamError(service.ChatErrorMessage, errors.New("429"))}}, RouterOptions{})

	w := doRequest(router, http.MethodPost, "/api/chat", `{"messages":[]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to process chat request"}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/api/chat", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
}

func TestHealthzAndRequestID(t *testing.T) {
	router := newTestRouter(t, &testDeps{}, RouterOptions{})

	w := doRequest(router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestOperationalRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	router := newTestRouter(t, &testDeps{}, RouterOptions{
		Gatherer:       reg,
		Metrics:        m,
		SwaggerEnabled: true,
		SwaggerPath:    "/swagger",
	})

	doRequest(router, http.MethodGet, "/healthz", "")

	w := doRequest(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{handler="/healthz",method="GET",status="2xx"} 1`)

	w = doRequest(router, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/wallet-data")

	w = doRequest(router, http.MethodGet, "/debug/pprof/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &testDeps{}, RouterOptions{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
