package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
)

// Config holds all model provider configuration.
type Config struct {
	// Provider selects which provider to use.
	// Values: "openrouter", "openai", "anthropic", "gemini", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single model request
	// (including retries). Default: 90s; vision calls are slow.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-sonnet"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"

	// Optional attribution headers (HTTP-Referer, X-Title).
	Referer string
	Title   string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
			Title: "erdgrade",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "ERDGRADE_LLM_PROVIDER")

	setString(&cfg.OpenRouter.APIKey, "ERDGRADE_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "ERDGRADE_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "ERDGRADE_OPENROUTER_BASE_URL")
	setString(&cfg.OpenRouter.Referer, "ERDGRADE_OPENROUTER_REFERER")
	setString(&cfg.OpenRouter.Title, "ERDGRADE_OPENROUTER_TITLE")

	setString(&cfg.Anthropic.APIKey, "ERDGRADE_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "ERDGRADE_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "ERDGRADE_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "ERDGRADE_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "ERDGRADE_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "ERDGRADE_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "ERDGRADE_GEMINI_MODEL")

	if v := os.Getenv("ERDGRADE_LLM_TIMEOUT"); v != "" {
		if d, err := cast.ToDurationE(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("ERDGRADE_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := cast.ToIntE(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenRouter → OpenAI → Anthropic → Gemini) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Model returns the model ID the selected provider will call.
func (c Config) Model() string {
	switch c.Provider {
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "openai":
		return resolveModel(c.OpenAI.Model, openaiModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	case "openrouter":
		return resolveModel(c.OpenRouter.Model, openrouterModels)
	case "mock":
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ERDGRADE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("ERDGRADE_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("ERDGRADE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("ERDGRADE_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
