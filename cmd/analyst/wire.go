package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/app/service"
	"solana_analyst/internal/client"
	"solana_analyst/internal/config"
	"solana_analyst/internal/infrastructure/llm"
	"solana_analyst/internal/infrastructure/solanarpc"
	"solana_analyst/internal/infrastructure/tokenloader"
	"solana_analyst/internal/pkg/logger"
	"solana_analyst/internal/pkg/metrics"
)

// application is the wired object graph shared by every command.
type application struct {
	cfg       *config.Config
	zapLogger *zap.Logger
	log       port.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	prices    port.NativePriceSource
	snapshots port.WalletSnapshotService
	supply    port.SupplyProvider
	chat      port.ChatService
}

func millis(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func buildApplication(c *cli.Context) (*application, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}
	logger.InitSlog(zl, cfg.Logging.Level)
	return wireApplication(cfg, zl, logger.NewSlogAdapter())
}

// wireApplication builds clients and services. Constructors name their own loggers under zl.
func wireApplication(cfg *config.Config, zl *zap.Logger, appLogger port.Logger) (*application, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	moralis := client.NewMoralisClient(
		cfg.Moralis.BaseURL,
		cfg.Moralis.APIKey,
		millis(cfg.Moralis.RequestTimeoutMillis),
		cfg.Moralis.RequestsPerSecond,
		cfg.Moralis.Burst,
		zl,
		m,
	)

	providers, err := buildPriceProviders(cfg, moralis, zl, m)
	if err != nil {
		return nil, err
	}
	prices := service.NewPriceService(providers, cfg.PriceCacheTTL(), cfg.PriceSvc.FallbackPrice, appLogger.With("component", "price"), m)

	enricher := service.NewTokenEnricher(moralis, prices, cfg.TokenPriceCacheTTL(), appLogger.With("component", "enricher"), m)
	logos := tokenloader.NewLogoTable(cfg.Tokens.LogoFile, appLogger.Info, appLogger.Warn)
	snapshots := service.NewWalletSnapshotService(
		moralis,
		moralis,
		prices,
		enricher,
		logos,
		service.NewHistorySynthesizer(nil, nil),
		service.WalletSnapshotConfig{
			MaxConcurrentEnrichments: cfg.WalletSvc.MaxConcurrentEnrichments,
			TransferLimit:            cfg.WalletSvc.TransferLimit,
			HistoryDays:              cfg.WalletSvc.HistoryDays,
		},
		appLogger.With("component", "wallet"),
		m,
	)

	supply := solanarpc.NewSupplyClient(
		solanarpc.NewRPCClient(cfg.SolanaRPC.URL),
		cfg.SolanaRPC.Commitment,
		zl,
		m,
	)

	completion := llm.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.BaseURL,
		time.Duration(cfg.Chat.RequestTimeoutSeconds)*time.Second,
		zl,
		m,
	)
	chat := service.NewChatService(completion, service.ChatConfig{
		Model:              cfg.Chat.Model,
		Temperature:        cfg.Chat.Temperature,
		MaxTokens:          cfg.Chat.MaxTokens,
		RecentTransactions: cfg.Chat.RecentTransactions,
	}, appLogger.With("component", "chat"))

	return &application{
		cfg:       cfg,
		zapLogger: zl,
		log:       appLogger,
		registry:  registry,
		metrics:   m,
		prices:    prices,
		snapshots: snapshots,
		supply:    supply,
		chat:      chat,
	}, nil
}

// buildPriceProviders maps priceService.sources to clients, keeping the configured order.
func buildPriceProviders(cfg *config.Config, moralis *client.MoralisClient, zl *zap.Logger, m *metrics.Metrics) ([]port.PriceProvider, error) {
	providers := make([]port.PriceProvider, 0, len(cfg.PriceSvc.Sources))
	for _, name := range cfg.PriceSvc.Sources {
		switch name {
		case config.SourceCoinGecko:
			providers = append(providers, client.NewCoinGeckoClient(
				cfg.CoinGecko.BaseURL,
				cfg.CoinGecko.APIKey,
				millis(cfg.CoinGecko.RequestTimeoutMillis),
				zl,
				m,
			))
		case config.SourceMoralis:
			providers = append(providers, moralis.NativePriceSource())
		case config.SourceBinance:
			providers = append(providers, client.NewBinanceClient(
				cfg.Binance.BaseURL,
				cfg.Binance.Symbol,
				millis(cfg.Binance.RequestTimeoutMillis),
				zl,
				m,
			))
		case config.SourceDEXScreener:
			providers = append(providers, client.NewDEXScreenerClient(
				cfg.DEXScreener.BaseURL,
				cfg.DEXScreener.ChainID,
				millis(cfg.DEXScreener.RequestTimeoutMillis),
				zl,
				m,
			))
		default:
			return nil, fmt.Errorf("unknown price source %q", name)
		}
	}
	return providers, nil
}
