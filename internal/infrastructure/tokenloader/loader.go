package tokenloader

import (
	"fmt"
	"strings"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/pkg/utils"
)

const tokenListLogoPattern = "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/%s/logo.png"

// Well-known mints with a logo in the Solana token list.
var defaultLogoMints = []string{
	"So11111111111111111111111111111111111111112",  // SOL
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", // USDT
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", // BONK
	"4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R", // RAY
	"orcaEKTdK7LKz57vaAYr9QeNsVEPfiu6QeMU1kektZE",  // ORCA
	"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",  // mSOL
	"J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn", // JitoSOL
	"SRMuApVNdxXokk5GT7XD5cUUgXMBCoAz2LHeuAoKWRt",  // SRM
	"ATLASXmbPQxBUYbxPsV97usA3fPQYEqzQBUHgiFCUsXx", // ATLAS
	"poLisWXnNRwC6oBu1vHiuKQzFjGL4XDSu4g9qjz9qVk",  // POLIS
}

// LogoTable implements port.LogoResolver from a fixed mint table plus optional overrides.
type LogoTable struct {
	logos      map[string]string
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewLogoTable creates the built-in table. When overrideFile is set, its {"mint": "url"} entries
// replace or extend the defaults. An unreadable override file is logged and ignored.
func NewLogoTable(overrideFile string, loggerInfo, loggerWarn func(msg string, args ...any)) port.LogoResolver {
	t := &LogoTable{
		logos:      make(map[string]string, len(defaultLogoMints)),
		loggerInfo: loggerInfo,
		loggerWarn: loggerWarn,
	}
	for _, mint := range defaultLogoMints {
		t.logos[mint] = TokenListLogoURL(mint)
	}

	if overrideFile != "" {
		t.loadOverrides(overrideFile)
	}
	return t
}

func (t *LogoTable) loadOverrides(path string) {
	overrides, err := utils.LoadJSONFile[map[string]string](path)
	if err != nil {
		if t.loggerWarn != nil {
			t.loggerWarn("Failed to load logo override file, using built-in table", "path", path, "error", err)
		}
		return
	}

	applied := 0
	for mint, logo := range overrides {
		mint, logo = strings.TrimSpace(mint), strings.TrimSpace(logo)
		if mint == "" || logo == "" {
			continue
		}
		t.logos[mint] = logo
		applied++
	}
	if t.loggerInfo != nil {
		t.loggerInfo("Logo overrides loaded", "path", path, "count", applied)
	}
}

// LogoURL implements port.LogoResolver. Unknown mints get the token-list URL pattern.
func (t *LogoTable) LogoURL(mint string) string {
	if logo, ok := t.logos[mint]; ok {
		return logo
	}
	return TokenListLogoURL(mint)
}

// TokenListLogoURL is the conventional token-list logo location for mint.
func TokenListLogoURL(mint string) string {
	return fmt.Sprintf(tokenListLogoPattern, mint)
}
