// Package oracle talks to the black-box extension computers under test. A
// Provider submits one framework description and returns the raw text answer;
// Client adds rate limiting, retries, caching, and response parsing on top.
package oracle

import (
	"context"
	"net/http"
	"net/url"
)

// Provider defines the interface for oracle backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Ask submits one framework description and returns the raw response text
	Ask(ctx context.Context, afDescription string) (string, error)
}

// Instruction is the fixed system prompt shared by every provider. It pins
// the JSON response schema (four keys, list of lists of argument names,
// [[ ]] for the empty-set extension, [] for no valid extension).
const Instruction = `You are an expert in computational argumentation. You will be given a string representation of an Argumentation Framework (AF) as a tuple of arguments and attack relationships. The input follows this schema: ([arguments], [attack_relationships]).

Your task is to analyze the provided AF and compute all Grounded (GE), Complete (CE), Preferred (PE), and Stable (SE) extensions.

Format your response as a single, clean JSON object with the following schema:
{
    "GE": [[list of arguments], ...],
    "CE": [[list of arguments], ...],
    "PE": [[list of arguments], ...],
    "SE": [[list of arguments], ...]
}

- Each argument name must be a string.
- If an extension type has multiple possible sets, list all of them.
- If an extension type results in an empty set, represent it as [[]].
- If an extension type has no valid sets, represent it as [].

DO NOT include any additional text or explanation in your response.
All answers must ONLY be lists of argument names. You may not use mathematical notations or text descriptions of the extensions.`

// Config holds oracle provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "exact"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout per request attempt, in seconds
	Timeout int

	// MaxRetries bounds attempts per query; exhausting it is a TimeoutError
	MaxRetries int

	// RetryDelaySeconds is the fixed delay between attempts
	RetryDelaySeconds int

	// MaxTokens limits the response length
	MaxTokens int

	// RequestsPerSecond throttles outgoing queries (0 disables)
	RequestsPerSecond float64

	// Burst for the rate limiter
	Burst int

	// CacheTTLSeconds keeps raw responses around for repeated descriptions
	// (0 disables caching)
	CacheTTLSeconds int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:          "",
		Model:             "",
		Timeout:           60,
		MaxRetries:        3,
		RetryDelaySeconds: 5,
		MaxTokens:         2000,
		RequestsPerSecond: 1,
		Burst:             2,
		CacheTTLSeconds:   3600,
	}
}

func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
