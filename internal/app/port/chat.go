package port

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"solana_analyst/internal/domain/entity"
)

// CompletionClient is the subset of the OpenAI client the advisor uses.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatService answers an advisor turn.
type ChatService interface {
	Respond(ctx context.Context, req entity.ChatRequest) (entity.ChatMessage, error)
}
