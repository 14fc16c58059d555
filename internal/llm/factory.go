package llm

import (
	"context"
	"fmt"

	"github.com/ananya/studydeck/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// request logging middleware.
func NewProvider(ctx context.Context, cfg Config, requests store.LLMRequestRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		// OpenRouter is OpenAI-compatible; reuse the OpenAI provider.
		base, err = NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenRouter.APIKey,
			Model:   cfg.OpenRouter.Model,
			BaseURL: cfg.OpenRouter.BaseURL,
		})
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller -> retry -> logging -> base.
	logged := WithLogging(base, requests)
	return WithRetry(logged, cfg.Retry), nil
}
