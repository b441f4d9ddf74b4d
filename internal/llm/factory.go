package llm

import (
	"context"
	"fmt"

	"github.com/pranavj/mentis/internal/store"
)

// NewProvider builds the provider named by cfg and wraps it with the
// standard middleware chain: caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithTimeout(WithRetry(WithLogging(base, cfg.Provider, events), cfg.Retry), cfg.Timeout), nil
}

// NewProviderFromConfig validates cfg and builds the provider. The
// configuration is resolved by the caller (config file, MENTIS_* env,
// vendor key discovery); this is the single construction path.
func NewProviderFromConfig(ctx context.Context, cfg Config, events store.LLMEventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, events)
}
