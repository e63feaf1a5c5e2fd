package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/apperrors"
	"solana_analyst/internal/pkg/metrics"
	"solana_analyst/internal/pkg/utils"
)

// WalletDataErrorMessage is the client-facing message for a failed aggregation.
const WalletDataErrorMessage = "Failed to fetch wallet data"

// WalletSnapshotConfig tunes the aggregator.
type WalletSnapshotConfig struct {
	MaxConcurrentEnrichments int
	TransferLimit            int
	HistoryDays              int
}

// walletSnapshotServiceImpl implements port.WalletSnapshotService.
type walletSnapshotServiceImpl struct {
	wallets  port.WalletGateway
	tokens   port.TokenGateway
	prices   port.NativePriceSource
	enricher port.TokenEnricher
	logos    port.LogoResolver
	history  port.HistorySynthesizer
	cfg      WalletSnapshotConfig
	logger   port.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewWalletSnapshotService creates a new instance of walletSnapshotServiceImpl.
func NewWalletSnapshotService(
	wallets port.WalletGateway,
	tokens port.TokenGateway,
	prices port.NativePriceSource,
	enricher port.TokenEnricher,
	logos port.LogoResolver,
	history port.HistorySynthesizer,
	cfg WalletSnapshotConfig,
	logger port.Logger,
	m *metrics.Metrics,
) port.WalletSnapshotService {
	if cfg.MaxConcurrentEnrichments <= 0 {
		cfg.MaxConcurrentEnrichments = 1
	}
	if cfg.TransferLimit <= 0 {
		cfg.TransferLimit = 10
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 30
	}
	return &walletSnapshotServiceImpl{
		wallets:  wallets,
		tokens:   tokens,
		prices:   prices,
		enricher: enricher,
		logos:    logos,
		history:  history,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Aggregate implements port.WalletSnapshotService.
func (s *walletSnapshotServiceImpl) Aggregate(ctx context.Context, walletAddress, tokenAddress string) (*entity.WalletSnapshot, error) {
	log := s.logger.With("walletAddress", walletAddress)
	log.Debug("Aggregating wallet snapshot", "tokenAddress", tokenAddress)

	var (
		native    entity.NativePrice
		balance   string
		rawTokens []entity.GatewayToken
		transfers []json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		native = s.prices.GetNativePrice(gctx)
		return nil
	})
	g.Go(func() error {
		var err error
		balance, err = s.wallets.GetBalance(gctx, walletAddress)
		if err != nil {
			return fmt.Errorf("fetch balance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rawTokens, err = s.wallets.GetTokens(gctx, walletAddress)
		if err != nil {
			return fmt.Errorf("fetch tokens: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transfers, err = s.wallets.GetTransfers(gctx, walletAddress, s.cfg.TransferLimit)
		if err != nil {
			return fmt.Errorf("fetch transfers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("Wallet gateway call failed", "error", err)
		return nil, apperrors.NewUpstreamError(WalletDataErrorMessage, err)
	}

	if balance == "" {
		balance = "0"
	}
	if transfers == nil {
		transfers = []json.RawMessage{}
	}

	holdings := s.enrichTokens(ctx, rawTokens, native.Price)
	s.metrics.RecordTokensEnriched(len(holdings))

	snapshot := &entity.WalletSnapshot{
		Balance:      balance,
		SolPrice:     native.Price,
		Tokens:       holdings,
		Transactions: transfers,
		TotalValue:   totalValue(balance, native.Price, holdings),
	}

	if tokenAddress != "" {
		snapshot.HistoricalPrices = s.priceHistory(ctx, tokenAddress)
	} else {
		snapshot.PortfolioHistory = s.history.Synthesize(snapshot.TotalValue)
	}

	log.Info("Wallet snapshot assembled",
		"tokenCount", len(holdings),
		"transferCount", len(transfers),
		"priceSource", native.Source,
		"totalValue", snapshot.TotalValue)
	return snapshot, nil
}

// enrichTokens builds one holding per gateway token, in gateway order.
func (s *walletSnapshotServiceImpl) enrichTokens(ctx context.Context, rawTokens []entity.GatewayToken, solPrice float64) []entity.TokenHolding {
	holdings := make([]entity.TokenHolding, len(rawTokens))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrentEnrichments)
	for i, raw := range rawTokens {
		g.Go(func() error {
			holdings[i] = s.buildHolding(ctx, raw, solPrice)
			return nil // handled
		})
	}
	_ = g.Wait()

	return holdings
}

func (s *walletSnapshotServiceImpl) buildHolding(ctx context.Context, raw entity.GatewayToken, solPrice float64) (holding entity.TokenHolding) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Failed to compose token, using zero values", "mint", raw.Mint, "panic", r)
			s.metrics.RecordEnrichmentFailure("compose")
			holding = s.zeroHolding(raw)
		}
	}()

	enrichment := s.enricher.Enrich(ctx, raw.Mint)
	return composeHolding(raw, enrichment, solPrice, s.logos)
}

// composeHolding derives the display fields of one token from its price and metadata.
func composeHolding(raw entity.GatewayToken, enrichment entity.Enrichment, solPrice float64, logos port.LogoResolver) entity.TokenHolding {
	meta := enrichment.Metadata
	if meta == nil {
		meta = &entity.TokenMetadata{}
	}

	amount := utils.ParseAmount(raw.Amount)
	price := decimal.NewFromFloat(enrichment.Price)
	usdValue := amount.Mul(price)

	divisor := decimal.NewFromFloat(solPrice)
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}

	holding := baseHolding(raw)
	holding.Name = utils.FirstNonEmpty(raw.Name, meta.Name, entity.UnknownTokenName)
	holding.Symbol = utils.FirstNonEmpty(raw.Symbol, meta.Symbol, entity.UnknownTokenSymbol)
	holding.TokenPrice = price.StringFixed(4)
	holding.UsdValue = usdValue.StringFixed(2)
	holding.SolValue = usdValue.Div(divisor).StringFixed(4)
	holding.LogoURL = utils.FirstNonEmpty(meta.Logo, logos.LogoURL(raw.Mint))
	holding.Website = meta.Website

	switch {
	case meta.Decimals != nil && *meta.Decimals != 0:
		holding.Decimals = *meta.Decimals
	case raw.Decimals != nil:
		holding.Decimals = *raw.Decimals
	}
	return holding
}

func (s *walletSnapshotServiceImpl) zeroHolding(raw entity.GatewayToken) entity.TokenHolding {
	holding := baseHolding(raw)
	holding.Name = utils.FirstNonEmpty(raw.Name, entity.UnknownTokenName)
	holding.Symbol = utils.FirstNonEmpty(raw.Symbol, entity.UnknownTokenSymbol)
	holding.TokenPrice = "0.0000"
	holding.UsdValue = "0.00"
	holding.SolValue = "0.0000"
	holding.LogoURL = s.logos.LogoURL(raw.Mint)
	if raw.Decimals != nil {
		holding.Decimals = *raw.Decimals
	}
	return holding
}

func baseHolding(raw entity.GatewayToken) entity.TokenHolding {
	return entity.TokenHolding{
		AssociatedTokenAddress: raw.AssociatedTokenAddress,
		Mint:                   raw.Mint,
		AmountRaw:              raw.AmountRaw,
		Amount:                 raw.Amount,
		IsVerifiedContract:     raw.IsVerifiedContract,
		PossibleSpam:           raw.PossibleSpam,
	}
}

// totalValue is balance times price plus the rounded usdValue of every holding, rounded to cents.
func totalValue(balance string, solPrice float64, holdings []entity.TokenHolding) float64 {
	total := utils.ParseAmount(balance).Mul(decimal.NewFromFloat(solPrice))
	for _, h := range holdings {
		total = total.Add(utils.ParseAmount(h.UsdValue))
	}
	return total.Round(2).InexactFloat64()
}

func (s *walletSnapshotServiceImpl) priceHistory(ctx context.Context, tokenAddress string) []entity.HistoricalPrice {
	to := s.now()
	from := to.AddDate(0, 0, -s.cfg.HistoryDays)

	history, err := s.tokens.GetPriceHistory(ctx, tokenAddress, from, to)
	if err != nil {
		s.logger.Warn("Price history lookup failed", "tokenAddress", tokenAddress, "error", err)
		return []entity.HistoricalPrice{}
	}
	if history == nil {
		return []entity.HistoricalPrice{}
	}
	return history
}
