package utils

import (
	"strings"

	dexscreener_entity "solana_analyst/internal/entity"
)

// SafeDerefFloat64 reads a value from a possibly nil liquidity block, or 0.
func SafeDerefFloat64(liquidity *dexscreener_entity.DEXLiquidity, getter func(dexscreener_entity.DEXLiquidity) float64) float64 {
	if liquidity == nil {
		return 0
	}
	return getter(*liquidity)
}

// FirstNonEmpty returns the first non-blank string, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
