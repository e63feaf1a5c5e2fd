package utils

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// ParseAmount parses a decimal token quantity. Empty or non-numeric input yields zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatFixed renders f with exactly places digits after the point.
func FormatFixed(f float64, places int32) string {
	return decimal.NewFromFloat(f).StringFixed(places)
}

// Round2 rounds f half away from zero to two decimal places.
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// FormatLamports renders a lamport count as SOL, trimming trailing zeros.
// Example: 1500000000 => "1.5"
func FormatLamports(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -9).String()
}
