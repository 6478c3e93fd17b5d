package oracle

import (
	"fmt"
	"strings"
)

// NewProvider creates an oracle provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
