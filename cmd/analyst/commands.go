package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/infrastructure/walletloader"
	"solana_analyst/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output in JSON format",
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "Print a wallet snapshot",
		ArgsUsage: "ADDRESS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "token",
				Usage: "Mint whose 30-day price history replaces the portfolio curve",
			},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			address := c.Args().Get(0)
			if !utils.IsValidAddress(address) {
				return fmt.Errorf("a valid wallet address is required")
			}
			token := c.String("token")
			if token != "" && !utils.IsValidAddress(token) {
				return fmt.Errorf("invalid token address %q", token)
			}

			app, err := buildApplication(c)
			if err != nil {
				return err
			}
			defer func() { _ = app.zapLogger.Sync() }()

			snap, err := app.snapshots.Aggregate(c.Context, address, token)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return writeJSON(os.Stdout, snap)
			}
			renderSnapshot(os.Stdout, address, snap)
			return nil
		},
	}
}

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:  "price",
		Usage: "Print the SOL/USD price and its 24h change",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			app, err := buildApplication(c)
			if err != nil {
				return err
			}
			defer func() { _ = app.zapLogger.Sync() }()

			price := app.prices.GetNativePrice(c.Context)
			if c.Bool("json") {
				return writeJSON(os.Stdout, price)
			}
			fmt.Printf("SOL Price:  %s USD\n", utils.FormatFixed(price.Price, 2))
			fmt.Printf("24h Change: %s%%\n", utils.FormatFixed(price.Change24h, 2))
			fmt.Printf("Source:     %s\n", price.Source)
			return nil
		},
	}
}

func supplyCommand() *cli.Command {
	return &cli.Command{
		Name:  "supply",
		Usage: "Print network-wide SOL supply",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			app, err := buildApplication(c)
			if err != nil {
				return err
			}
			defer func() { _ = app.zapLogger.Sync() }()

			supply, err := app.supply.GetSupply(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return writeJSON(os.Stdout, supply)
			}
			fmt.Printf("Total:           %s SOL\n", utils.FormatLamports(supply.Total))
			fmt.Printf("Circulating:     %s SOL\n", utils.FormatLamports(supply.Circulating))
			fmt.Printf("Non-circulating: %s SOL\n", utils.FormatLamports(supply.NonCirculating))
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Poll wallet snapshots on an interval",
		ArgsUsage: "[ADDRESS...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "wallets",
				Usage: "Watch-list file, one address per line (defaults to watch.walletsFile)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Polling interval (defaults to watch.pollingInterval)",
			},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			app, err := buildApplication(c)
			if err != nil {
				return err
			}
			defer func() { _ = app.zapLogger.Sync() }()

			source := watchSource(c.Args().Slice(), c.String("wallets"), app)
			wallets, err := source.GetWallets()
			if err != nil {
				return err
			}
			if len(wallets) == 0 {
				return fmt.Errorf("no wallets to watch: pass addresses or --wallets")
			}

			interval := app.cfg.Watch.PollingInterval
			if c.IsSet("interval") {
				interval = c.Duration("interval")
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.log.Info("Watching wallets", "count", len(wallets), "interval", interval.String())
			return watchLoop(ctx, app.snapshots, wallets, interval, func(address string, snap *entity.WalletSnapshot) {
				if c.Bool("json") {
					_ = writeJSON(os.Stdout, map[string]any{"wallet": address, "snapshot": snap})
					return
				}
				renderSnapshotLine(os.Stdout, time.Now(), address, snap)
			}, app.log)
		},
	}
}

func watchSource(args []string, walletsFile string, app *application) port.WalletProvider {
	if len(args) > 0 {
		return walletloader.StaticWallets(args)
	}
	if walletsFile == "" {
		walletsFile = app.cfg.Watch.WalletsFile
	}
	return walletloader.NewWalletFileLoader(walletsFile, app.log.Info)
}

// watchLoop polls once immediately, then on every tick until ctx is cancelled.
// A failed snapshot is logged and the wallet is retried on the next tick.
func watchLoop(
	ctx context.Context,
	snapshots port.WalletSnapshotService,
	wallets []string,
	interval time.Duration,
	emit func(address string, snap *entity.WalletSnapshot),
	log port.Logger,
) error {
	poll := func() {
		for _, address := range wallets {
			if ctx.Err() != nil {
				return
			}
			snap, err := snapshots.Aggregate(ctx, address, "")
			if err != nil {
				log.Warn("Snapshot failed", "wallet", address, "error", err)
				continue
			}
			emit(address, snap)
		}
	}

	poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

func renderSnapshot(w io.Writer, address string, snap *entity.WalletSnapshot) {
	fmt.Fprintf(w, "Wallet:      %s\n", address)
	fmt.Fprintf(w, "SOL Balance: %s SOL\n", snap.Balance)
	fmt.Fprintf(w, "SOL Price:   %s USD\n", utils.FormatFixed(snap.SolPrice, 2))
	fmt.Fprintf(w, "Total Value: %s USD\n", utils.FormatFixed(snap.TotalValue, 2))

	fmt.Fprintf(w, "\nTokens (%d):\n", len(snap.Tokens))
	for _, t := range snap.Tokens {
		fmt.Fprintf(w, "  %-8s %-24s %s @ %s USD = %s USD\n", t.Symbol, t.Name, t.Amount, t.TokenPrice, t.UsdValue)
	}

	fmt.Fprintf(w, "\nRecent transfers: %d\n", len(snap.Transactions))
	if len(snap.HistoricalPrices) > 0 {
		fmt.Fprintf(w, "Price history points: %d\n", len(snap.HistoricalPrices))
	}
	if len(snap.PortfolioHistory) > 0 {
		first := snap.PortfolioHistory[0]
		last := snap.PortfolioHistory[len(snap.PortfolioHistory)-1]
		fmt.Fprintf(w, "Portfolio curve: %s %s ... %s %s\n",
			first.Date, utils.FormatFixed(first.Value, 2), last.Date, utils.FormatFixed(last.Value, 2))
	}
}

func renderSnapshotLine(w io.Writer, at time.Time, address string, snap *entity.WalletSnapshot) {
	fmt.Fprintf(w, "%s %s balance=%s SOL tokens=%d total=%s USD\n",
		at.UTC().Format(time.RFC3339), address, snap.Balance, len(snap.Tokens), utils.FormatFixed(snap.TotalValue, 2))
}
