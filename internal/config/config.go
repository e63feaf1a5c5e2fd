package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Price source identifiers accepted in priceService.sources.
const (
	SourceCoinGecko   = "coingecko"
	SourceMoralis     = "moralis"
	SourceBinance     = "binance"
	SourceDEXScreener = "dexscreener"
)

var knownPriceSources = map[string]struct{}{
	SourceCoinGecko:   {},
	SourceMoralis:     {},
	SourceBinance:     {},
	SourceDEXScreener: {},
}

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig        `yaml:"server"`
	Logging     LoggingConfig       `yaml:"logging"`
	Swagger     SwaggerConfig       `yaml:"swagger"`
	CoinGecko   CoinGeckoConfig     `yaml:"coinGecko"`
	Moralis     MoralisConfig       `yaml:"moralis"`
	Binance     BinanceConfig       `yaml:"binance"`
	DEXScreener DEXScreenerConfig   `yaml:"dexScreener"`
	SolanaRPC   SolanaRPCConfig     `yaml:"solanaRPC"`
	OpenAI      OpenAIConfig        `yaml:"openAI"`
	PriceSvc    PriceServiceConfig  `yaml:"priceService"`
	WalletSvc   WalletServiceConfig `yaml:"walletService"`
	Chat        ChatConfig          `yaml:"chat"`
	Tokens      TokensConfig        `yaml:"tokens"`
	Watch       WatchConfig         `yaml:"watch"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	ReadTimeout     int      `yaml:"readTimeout"`
	WriteTimeout    int      `yaml:"writeTimeout"`
	IdleTimeout     int      `yaml:"idleTimeout"`
	ShutdownTimeout int      `yaml:"shutdownTimeout"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
	EnablePprof     bool     `yaml:"enablePprof"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// MoralisConfig holds the configuration for the Moralis Solana gateway.
type MoralisConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	Burst                int     `yaml:"burst"`
}

// BinanceConfig holds the configuration for the Binance ticker client.
type BinanceConfig struct {
	BaseURL              string `yaml:"baseURL"`
	Symbol               string `yaml:"symbol"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ChainID              string `yaml:"chainID"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// SolanaRPCConfig holds the JSON-RPC node settings.
type SolanaRPCConfig struct {
	URL        string `yaml:"url"`
	Commitment string `yaml:"commitment"`
}

// OpenAIConfig holds credentials for the completion provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
}

// PriceServiceConfig holds configuration for the native price cascade.
type PriceServiceConfig struct {
	Sources         []string `yaml:"sources"`
	CacheTTLSeconds int      `yaml:"cacheTTLSeconds"`
	CacheDisabled   bool     `yaml:"cacheDisabled"`
	FallbackPrice   float64  `yaml:"fallbackPrice"`
}

// WalletServiceConfig holds configuration for snapshot aggregation.
type WalletServiceConfig struct {
	MaxConcurrentEnrichments  int  `yaml:"maxConcurrentEnrichments"`
	TransferLimit             int  `yaml:"transferLimit"`
	HistoryDays               int  `yaml:"historyDays"`
	TokenPriceCacheTTLSeconds int  `yaml:"tokenPriceCacheTTLSeconds"`
	TokenPriceCacheDisabled   bool `yaml:"tokenPriceCacheDisabled"`
}

// ChatConfig holds the completion request settings.
type ChatConfig struct {
	Model                 string  `yaml:"model"`
	Temperature           float32 `yaml:"temperature"`
	MaxTokens             int     `yaml:"maxTokens"`
	RecentTransactions    int     `yaml:"recentTransactions"`
	RequestTimeoutSeconds int     `yaml:"requestTimeoutSeconds"`
}

// TokensConfig points at an optional logo override file.
type TokensConfig struct {
	LogoFile string `yaml:"logoFile"`
}

// WatchConfig drives the CLI polling loop.
type WatchConfig struct {
	PollingInterval time.Duration `yaml:"pollingInterval"`
	WalletsFile     string        `yaml:"walletsFile"`
}

// PriceCacheTTL returns the memo TTL for price sources, zero when disabled.
func (c *Config) PriceCacheTTL() time.Duration {
	if c.PriceSvc.CacheDisabled {
		return 0
	}
	return time.Duration(c.PriceSvc.CacheTTLSeconds) * time.Second
}

// TokenPriceCacheTTL returns the memo TTL for per-token prices, zero when disabled.
func (c *Config) TokenPriceCacheTTL() time.Duration {
	if c.WalletSvc.TokenPriceCacheDisabled {
		return 0
	}
	return time.Duration(c.WalletSvc.TokenPriceCacheTTLSeconds) * time.Second
}

// LoadConfig loads configuration from a YAML file, a .env file and the process environment.
// A missing YAML file is not an error; defaults cover every field.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}

	var cfg Config
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
	case err != nil:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MORALIS_API_KEY"); v != "" {
		cfg.Moralis.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("SOLANA_RPC_URL"); v != "" {
		cfg.SolanaRPC.URL = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if !strings.HasPrefix(v, ":") {
			v = ":" + v
		}
		cfg.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("POLLING_INTERVAL"); v != "" {
		d, err := parseInterval(v)
		if err != nil {
			return fmt.Errorf("invalid POLLING_INTERVAL %q: %w", v, err)
		}
		cfg.Watch.PollingInterval = d
	}
	return nil
}

// parseInterval accepts a Go duration ("30s") or a bare millisecond count ("30000").
func parseInterval(v string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.RequestTimeoutMillis == 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 5000
	}

	if cfg.Moralis.BaseURL == "" {
		cfg.Moralis.BaseURL = "https://solana-gateway.moralis.io"
		logrus.Infof("Moralis.BaseURL not set, defaulting to %s", cfg.Moralis.BaseURL)
	}
	if cfg.Moralis.RequestTimeoutMillis == 0 {
		cfg.Moralis.RequestTimeoutMillis = 10000
	}
	if cfg.Moralis.RequestsPerSecond == 0 {
		cfg.Moralis.RequestsPerSecond = 25
		logrus.Infof("Moralis.RequestsPerSecond not set, defaulting to %.0f", cfg.Moralis.RequestsPerSecond)
	}
	if cfg.Moralis.Burst == 0 {
		cfg.Moralis.Burst = 25
	}
	if cfg.Moralis.APIKey == "" {
		logrus.Warn("Moralis API key not set; gateway requests will be rejected upstream")
	}

	if cfg.Binance.BaseURL == "" {
		cfg.Binance.BaseURL = "https://api.binance.com"
	}
	if cfg.Binance.Symbol == "" {
		cfg.Binance.Symbol = "SOLUSDT"
	}
	if cfg.Binance.RequestTimeoutMillis == 0 {
		cfg.Binance.RequestTimeoutMillis = 5000
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
	}
	if cfg.DEXScreener.ChainID == "" {
		cfg.DEXScreener.ChainID = "solana"
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
	}

	if cfg.SolanaRPC.URL == "" {
		cfg.SolanaRPC.URL = "https://api.mainnet-beta.solana.com"
		logrus.Infof("SolanaRPC.URL not set, defaulting to %s", cfg.SolanaRPC.URL)
	}
	if cfg.SolanaRPC.Commitment == "" {
		cfg.SolanaRPC.Commitment = "finalized"
	}

	for i, s := range cfg.PriceSvc.Sources {
		cfg.PriceSvc.Sources[i] = strings.ToLower(strings.TrimSpace(s))
	}
	if len(cfg.PriceSvc.Sources) == 0 {
		cfg.PriceSvc.Sources = []string{SourceCoinGecko, SourceMoralis, SourceBinance}
		logrus.Infof("PriceService.Sources not set, defaulting to %v", cfg.PriceSvc.Sources)
	}
	if cfg.PriceSvc.CacheTTLSeconds == 0 {
		cfg.PriceSvc.CacheTTLSeconds = 60
	}
	if cfg.PriceSvc.FallbackPrice == 0 {
		cfg.PriceSvc.FallbackPrice = 80.0
	}

	if cfg.WalletSvc.MaxConcurrentEnrichments == 0 {
		cfg.WalletSvc.MaxConcurrentEnrichments = 8
	}
	if cfg.WalletSvc.TransferLimit == 0 {
		cfg.WalletSvc.TransferLimit = 10
	}
	if cfg.WalletSvc.HistoryDays == 0 {
		cfg.WalletSvc.HistoryDays = 30
	}
	if cfg.WalletSvc.TokenPriceCacheTTLSeconds == 0 {
		cfg.WalletSvc.TokenPriceCacheTTLSeconds = 300
	}

	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4o"
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.7
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 1000
	}
	if cfg.Chat.RecentTransactions == 0 {
		cfg.Chat.RecentTransactions = 5
	}
	if cfg.Chat.RequestTimeoutSeconds == 0 {
		cfg.Chat.RequestTimeoutSeconds = 60
	}

	if cfg.Watch.PollingInterval == 0 {
		cfg.Watch.PollingInterval = 30 * time.Second
	}
}

// Validate reports every configuration problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	for _, s := range c.PriceSvc.Sources {
		if _, ok := knownPriceSources[s]; !ok {
			errs = append(errs, fmt.Errorf("priceService.sources: unknown source %q", s))
		}
	}
	if c.PriceSvc.CacheTTLSeconds < 0 {
		errs = append(errs, errors.New("priceService.cacheTTLSeconds must not be negative"))
	}
	if c.WalletSvc.TokenPriceCacheTTLSeconds < 0 {
		errs = append(errs, errors.New("walletService.tokenPriceCacheTTLSeconds must not be negative"))
	}
	if c.WalletSvc.MaxConcurrentEnrichments < 0 {
		errs = append(errs, errors.New("walletService.maxConcurrentEnrichments must not be negative"))
	}
	if c.Watch.PollingInterval < 0 {
		errs = append(errs, errors.New("watch.pollingInterval must not be negative"))
	}
	return errors.Join(errs...)
}
