package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/pkg/utils"
)

// WalletFileLoader implements the port.WalletProvider interface by loading a watch list from a file.
// The file holds one base58 address per line; blank lines and lines starting with # are ignored.
type WalletFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(filePath string, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	return &WalletFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetWallets reads wallet addresses from the configured file path. Duplicates are dropped.
func (l *WalletFileLoader) GetWallets() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utils.IsValidAddress(line) {
			if l.loggerInfo != nil {
				l.loggerInfo("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			}
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		wallets = append(wallets, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	}
	return wallets, nil
}

// StaticWallets is a fixed watch list, used when addresses come from the command line.
type StaticWallets []string

// GetWallets implements port.WalletProvider.
func (s StaticWallets) GetWallets() ([]string, error) {
	wallets := make([]string, 0, len(s))
	for _, w := range s {
		w = strings.TrimSpace(w)
		if !utils.IsValidAddress(w) {
			return nil, fmt.Errorf("invalid wallet address %q", w)
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}
