package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4.1-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// envBindings lists the ALTA_* variables read by ConfigFromEnv.
func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"ALTA_LLM_PROVIDER":       &cfg.Provider,
		"ALTA_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"ALTA_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"ALTA_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"ALTA_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"ALTA_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"ALTA_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"ALTA_GEMINI_MODEL":       &cfg.Gemini.Model,
		"ALTA_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"ALTA_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
}

// ConfigFromEnv builds a Config from ALTA_* environment variables, falling
// back to defaults for unset values. When ALTA_LLM_PROVIDER is unset, the
// first vendor key found among GEMINI_API_KEY, OPENAI_API_KEY,
// ANTHROPIC_API_KEY and OPENROUTER_API_KEY selects the provider.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	explicit := os.Getenv("ALTA_LLM_PROVIDER") != ""

	for name, dst := range envBindings(&cfg) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("ALTA_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	if !explicit && cfg.apiKey() == "" {
		discover(&cfg)
	}
	return cfg
}

func discover(cfg *Config) {
	vendors := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, v := range vendors {
		if k := os.Getenv(v.env); k != "" {
			cfg.Provider = v.provider
			*v.key = k
			return
		}
	}
}

func (c Config) apiKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.apiKey() == "" {
			return fmt.Errorf("ALTA_%s_API_KEY is required for the %s provider", envName(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func envName(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC"
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderGemini:
		return "GEMINI"
	default:
		return "OPENROUTER"
	}
}
