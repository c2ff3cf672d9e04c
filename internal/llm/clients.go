package llm

import (
	"context"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"google.golang.org/genai"
)

// ChatClient abstracts the generative backend the planner talks to. The bot
// issues exactly one blocking generation call per planning round; streaming
// is intentionally not part of the contract.
type ChatClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

// defaultModel matches the default the SDK used before it required an
// explicit model name.
const defaultModel = "gemini-2.0-flash"

// GeminiChatClient adapts the generativeAI LLM client to the ChatClient interface.
type GeminiChatClient struct {
	client generativeAI.ChatClient
}

// NewGeminiChatClient creates a ChatClient backed by Gemini.
func NewGeminiChatClient(ctx context.Context, apiKey string) (ChatClient, error) {
	client, err := generativeAI.NewGeminiChatClient(ctx, apiKey, defaultModel)
	if err != nil {
		return nil, err
	}
	return &GeminiChatClient{client: client}, nil
}

func (g *GeminiChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.GenerateResponse(ctx, prompt, config)
}

func (g *GeminiChatClient) Model() string {
	if g.client == nil {
		return ""
	}
	return g.client.Model()
}
