package utils

import (
	"strings"

	"github.com/gagliardetto/solana-go"
)

// IsValidAddress reports whether s decodes as a 32-byte base58 Solana public key.
func IsValidAddress(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}
