package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/app/service"
	"solana_analyst/internal/infrastructure/solanarpc"
)

// Handler serves the dashboard API.
type Handler struct {
	snapshots port.WalletSnapshotService
	prices    port.NativePriceSource
	supply    port.SupplyProvider
	chat      port.ChatService
	logger    *zap.Logger
}

// NewHandler creates a new instance of Handler.
func NewHandler(
	snapshots port.WalletSnapshotService,
	prices port.NativePriceSource,
	supply port.SupplyProvider,
	chat port.ChatService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		snapshots: snapshots,
		prices:    prices,
		supply:    supply,
		chat:      chat,
		logger:    logger.Named("RestAPI"),
	}
}

// WalletData godoc
// @Summary      Wallet snapshot
// @Description  Balance, enriched tokens, recent transfers and either token price history or a synthesized portfolio curve.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      WalletDataRequest  true  "Wallet and optional token"
// @Success      200      {object}  entity.WalletSnapshot
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/wallet-data [post]
func (h *Handler) WalletData(c *gin.Context) {
	var req WalletDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequestBody})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err, msgInvalidWalletAddress)
		return
	}

	snapshot, err := h.snapshots.Aggregate(c.Request.Context(), req.WalletAddress, req.TokenAddress)
	if err != nil {
		respondError(c, h.logger, err, service.WalletDataErrorMessage)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SolanaPrice godoc
// @Summary      SOL/USD price
// @Description  Spot price and 24h change from the first healthy price source. Never fails.
// @Tags         market
// @Produce      json
// @Success      200  {object}  entity.NativePrice
// @Router       /api/solana-price [get]
func (h *Handler) SolanaPrice(c *gin.Context) {
	c.JSON(http.StatusOK, h.prices.GetNativePrice(c.Request.Context()))
}

// SolanaSupply godoc
// @Summary      SOL supply
// @Description  Total, circulating and non-circulating supply in lamports.
// @Tags         market
// @Produce      json
// @Success      200  {object}  entity.Supply
// @Failure      500  {object}  ErrorResponse
// @Router       /api/solana-supply [get]
func (h *Handler) SolanaSupply(c *gin.Context) {
	supply, err := h.supply.GetSupply(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, solanarpc.SupplyErrorMessage)
		return
	}
	c.JSON(http.StatusOK, supply)
}

// Chat godoc
// @Summary      Portfolio advisor
// @Description  One advisor turn. Prior messages and the dashboard's wallet snapshot are sent as context.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequestBody  true  "Conversation and wallet context"
// @Success      200      {object}  ChatResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequestBody})
		return
	}

	message, err := h.chat.Respond(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, h.logger, err, service.ChatErrorMessage)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Message: message})
}

// Healthz godoc
// @Summary  Liveness probe
// @Tags     ops
// @Produce  json
// @Success  200  {object}  HealthResponse
// @Router   /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
