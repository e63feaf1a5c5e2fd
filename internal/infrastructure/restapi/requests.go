package restapi

import (
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/apperrors"
	"solana_analyst/internal/pkg/utils"
)

// Client-facing validation messages.
const (
	msgInvalidRequestBody   = "Invalid request body"
	msgInvalidWalletAddress = "Invalid wallet address"
)

// WalletDataRequest is the body of POST /api/wallet-data.
type WalletDataRequest struct {
	WalletAddress string `json:"walletAddress" example:"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"`
	TokenAddress  string `json:"tokenAddress,omitempty" example:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`
}

// Validate checks both addresses are base58 public keys. TokenAddress is optional.
func (r WalletDataRequest) Validate() error {
	if !utils.IsValidAddress(r.WalletAddress) {
		return apperrors.NewValidationError("INVALID_WALLET_ADDRESS", msgInvalidWalletAddress)
	}
	if r.TokenAddress != "" && !utils.IsValidAddress(r.TokenAddress) {
		return apperrors.NewValidationError("INVALID_TOKEN_ADDRESS", msgInvalidWalletAddress)
	}
	return nil
}

// ChatRequestBody is the body of POST /api/chat.
type ChatRequestBody struct {
	Messages      []entity.ChatMessage   `json:"messages"`
	WalletData    *entity.ChatWalletData `json:"walletData"`
	WalletAddress string                 `json:"walletAddress"`
}

// ToDomain converts the body for the chat service.
func (r ChatRequestBody) ToDomain() entity.ChatRequest {
	return entity.ChatRequest{
		Messages:      r.Messages,
		WalletData:    r.WalletData,
		WalletAddress: r.WalletAddress,
	}
}

// ErrorResponse is every non-2xx body.
type ErrorResponse struct {
	Error string `json:"error" example:"Failed to fetch wallet data"`
}

// ChatResponse wraps the assistant turn.
type ChatResponse struct {
	Message entity.ChatMessage `json:"message"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
