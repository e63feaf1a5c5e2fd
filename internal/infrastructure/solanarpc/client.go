package solanarpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/apperrors"
	"solana_analyst/internal/pkg/metrics"
)

// SupplyErrorMessage is the client-facing message for a failed supply read.
const SupplyErrorMessage = "Failed to fetch Solana supply data"

// SupplyClient implements port.SupplyProvider over JSON-RPC.
type SupplyClient struct {
	rpc        RPCClient
	commitment rpc.CommitmentType
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewSupplyClient creates a supply reader. An empty commitment means finalized.
func NewSupplyClient(rpcClient RPCClient, commitment string, logger *zap.Logger, m *metrics.Metrics) port.SupplyProvider {
	c := rpc.CommitmentType(commitment)
	if c == "" {
		c = rpc.CommitmentFinalized
	}
	return &SupplyClient{
		rpc:        rpcClient,
		commitment: c,
		logger:     logger.Named("SupplyClient"),
		metrics:    m,
	}
}

// GetSupply implements port.SupplyProvider.
func (c *SupplyClient) GetSupply(ctx context.Context) (entity.Supply, error) {
	timer := metrics.NewTimer()
	out, err := c.rpc.GetSupply(ctx, c.commitment)
	if err == nil && (out == nil || out.Value == nil) {
		err = errors.New("getSupply returned an empty result")
	}
	c.metrics.RecordUpstreamCall("solana_rpc", "get_supply", err, timer.Seconds())

	if err != nil {
		c.logger.Error("getSupply failed", zap.String("commitment", string(c.commitment)), zap.Error(err))
		return entity.Supply{}, apperrors.NewUpstreamError(SupplyErrorMessage, fmt.Errorf("getSupply: %w", err))
	}

	supply := entity.Supply{
		Total:          out.Value.Total,
		Circulating:    out.Value.Circulating,
		NonCirculating: out.Value.NonCirculating,
	}
	c.logger.Debug("Fetched supply",
		zap.Uint64("total", supply.Total),
		zap.Uint64("circulating", supply.Circulating),
		zap.Uint64("slot", out.Context.Slot))
	return supply, nil
}
