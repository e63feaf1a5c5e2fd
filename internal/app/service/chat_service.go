package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/domain/entity"
	"solana_analyst/internal/pkg/apperrors"
	"solana_analyst/internal/pkg/utils"
)

// ChatErrorMessage is the client-facing message for a failed advisor turn.
const ChatErrorMessage = "Failed to process chat request"

const (
	advisorPersona = "You are an AI portfolio analyst for Serttch — an AI-powered Solana blockchain guide focused on clarity, precision, and privacy."
	advisorClosing = "Analyze this data and provide insightful, accurate responses to the user's questions about their portfolio.\n" +
		"Focus on providing actionable insights, identifying opportunities, and highlighting risks.\n" +
		"Be concise but thorough, and use markdown formatting for better readability."
	noWalletData = "No wallet data available. Provide general advice."
)

// ChatConfig holds the completion settings.
type ChatConfig struct {
	Model              string
	Temperature        float32
	MaxTokens          int
	RecentTransactions int
}

// chatServiceImpl implements port.ChatService.
type chatServiceImpl struct {
	client port.CompletionClient
	cfg    ChatConfig
	logger port.Logger
}

// NewChatService creates the portfolio advisor.
func NewChatService(client port.CompletionClient, cfg ChatConfig, logger port.Logger) port.ChatService {
	if cfg.RecentTransactions <= 0 {
		cfg.RecentTransactions = 5
	}
	return &chatServiceImpl{client: client, cfg: cfg, logger: logger}
}

// Respond implements port.ChatService.
func (s *chatServiceImpl) Respond(ctx context.Context, req entity.ChatRequest) (entity.ChatMessage, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: BuildSystemPrompt(req.WalletAddress, req.WalletData, s.cfg.RecentTransactions),
	})
	for _, m := range req.Messages {
		if m.Role == entity.RoleSystem {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	s.logger.Debug("Requesting completion",
		"model", s.cfg.Model,
		"messageCount", len(messages),
		"hasWalletData", req.WalletData != nil)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.Error("Completion request failed", "error", err)
		return entity.ChatMessage{}, apperrors.NewUpstreamError(ChatErrorMessage, err)
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("Completion returned no choices", "id", resp.ID)
		return entity.ChatMessage{}, apperrors.NewUpstreamError(ChatErrorMessage, errors.New("completion returned no choices"))
	}

	top := resp.Choices[0].Message
	return entity.ChatMessage{Role: top.Role, Content: top.Content}, nil
}

// BuildSystemPrompt renders the advisor system message for a wallet.
func BuildSystemPrompt(walletAddress string, data *entity.ChatWalletData, recentTransactions int) string {
	var b strings.Builder
	b.WriteString(advisorPersona)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "You have access to the following data for wallet %s:\n\n", walletAddress)

	if data == nil {
		b.WriteString(noWalletData)
	} else {
		writeWalletBlock(&b, data, recentTransactions)
	}

	b.WriteString("\n\n")
	b.WriteString(advisorClosing)
	return b.String()
}

func writeWalletBlock(b *strings.Builder, data *entity.ChatWalletData, recentTransactions int) {
	balanceUSD := utils.ParseAmount(data.Balance.String()).InexactFloat64() * data.SolPrice
	fmt.Fprintf(b, "SOL Balance: %s SOL (%s USD)\n", data.Balance, formatNumber(balanceUSD))
	fmt.Fprintf(b, "SOL Price: %s USD\n\n", formatNumber(data.SolPrice))

	fmt.Fprintf(b, "Tokens (%d):\n", len(data.Tokens))
	if len(data.Tokens) == 0 {
		b.WriteString("No tokens found")
	}
	for i, t := range data.Tokens {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := utils.FirstNonEmpty(t.Name, t.Symbol, "Unknown")
		fmt.Fprintf(b, "- %s: %s (%s USD)", label, t.Amount, t.UsdValue)
	}

	fmt.Fprintf(b, "\n\nRecent Transactions (%d):\n", len(data.Transactions))
	recent := data.Transactions
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	if len(recent) == 0 {
		b.WriteString("No recent transactions")
	}
	for i, tx := range recent {
		if i > 0 {
			b.WriteByte('\n')
		}
		kind := utils.FirstNonEmpty(tx.Type, "Transaction")
		fmt.Fprintf(b, "- %s of %s %s (%s)", kind, tx.Amount, tx.Symbol, formatBlockDate(tx.BlockTime))
	}
}

// formatBlockDate renders a unix-seconds block time as M/D/YYYY in UTC.
func formatBlockDate(blockTime entity.FlexInt) string {
	if !blockTime.Valid {
		return "unknown date"
	}
	return time.Unix(blockTime.Value, 0).UTC().Format("1/2/2006")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
