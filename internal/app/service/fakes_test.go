package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sashabaranov/go-openai"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/logger"
)

var errUpstream = errors.New("upstream unavailable")

func newTestLogger() port.Logger {
	return logger.FromSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeProvider struct {
	name  string
	price entity.NativePrice
	err   error
	calls atomic.Int32
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchNativePrice(context.Context) (entity.NativePrice, error) {
	p.calls.Add(1)
	if p.err != nil {
		return entity.NativePrice{}, p.err
	}
	return p.price, nil
}

type fakeNativeSource struct {
	price entity.NativePrice
	calls atomic.Int32
}

func (s *fakeNativeSource) GetNativePrice(context.Context) entity.NativePrice {
	s.calls.Add(1)
	return s.price
}

type fakeTokenGateway struct {
	mu          sync.Mutex
	prices      map[string]float64
	priceErrs   map[string]error
	metadata    map[string]*entity.TokenMetadata
	delays      map[string]time.Duration
	history     []entity.HistoricalPrice
	historyErr  error
	historyFrom time.Time
	historyTo   time.Time
	priceCalls  map[string]int
}

func (g *fakeTokenGateway) GetTokenPrice(_ context.Context, mint string) (float64, error) {
	g.mu.Lock()
	if g.priceCalls == nil {
		g.priceCalls = map[string]int{}
	}
	g.priceCalls[mint]++
	delay := g.delays[mint]
	g.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err := g.priceErrs[mint]; err != nil {
		return 0, err
	}
	return g.prices[mint], nil
}

func (g *fakeTokenGateway) GetTokenMetadata(_ context.Context, mint string) (*entity.TokenMetadata, error) {
	meta, ok := g.metadata[mint]
	if !ok {
		return nil, errUpstream
	}
	return meta, nil
}

func (g *fakeTokenGateway) GetPriceHistory(_ context.Context, _ string, from, to time.Time) ([]entity.HistoricalPrice, error) {
	g.mu.Lock()
	g.historyFrom, g.historyTo = from, to
	g.mu.Unlock()
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	return g.history, nil
}

func (g *fakeTokenGateway) priceCallCount(mint string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.priceCalls[mint]
}

type fakeWalletGateway struct {
	balance      string
	balanceErr   error
	tokens       []entity.GatewayToken
	tokensErr    error
	transfers    []json.RawMessage
	transfersErr error
	lastLimit    atomic.Int32
}

func (g *fakeWalletGateway) GetBalance(context.Context, string) (string, error) {
	return g.balance, g.balanceErr
}

func (g *fakeWalletGateway) GetTokens(context.Context, string) ([]entity.GatewayToken, error) {
	return g.tokens, g.tokensErr
}

func (g *fakeWalletGateway) GetTransfers(_ context.Context, _ string, limit int) ([]json.RawMessage, error) {
	g.lastLimit.Store(int32(limit))
	return g.transfers, g.transfersErr
}

type staticLogos struct{}

func (staticLogos) LogoURL(mint string) string { return "https://logos.test/" + mint + ".png" }

type fixedRandom float64

func (r fixedRandom) Float64() float64 { return float64(r) }

type fakeCompletion struct {
	resp    openai.ChatCompletionResponse
	err     error
	lastReq openai.ChatCompletionRequest
}

func (c *fakeCompletion) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastReq = req
	return c.resp, c.err
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func nanPrice() float64 { return math.NaN() }
