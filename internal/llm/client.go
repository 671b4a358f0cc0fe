package llm

import (
	"context"
	"fmt"
)

// Messages is a single-turn chat: a fixed system role and one user message.
type Messages struct {
	System string
	User   string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Chat sends one non-streaming request and returns the model's text reply
	Chat(ctx context.Context, messages Messages, tier ModelTier) (string, error)
	// GetModel returns the provider model used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI, "":
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
