package solanarpc

import (
	"context"

	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is the subset of the Solana JSON-RPC API the supply reader needs.
type RPCClient interface {
	GetSupply(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetSupplyResult, error)
}

type realRPCClient struct {
	client *rpc.Client
}

// NewRPCClient wraps the solana-go RPC client. Keyed endpoints carry their key in the URL.
func NewRPCClient(rpcURL string) RPCClient {
	return &realRPCClient{client: rpc.New(rpcURL)}
}

func (r *realRPCClient) GetSupply(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetSupplyResult, error) {
	return r.client.GetSupply(ctx, commitment)
}
