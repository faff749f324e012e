package config

import (
	"fmt"
	"strings"
)

var knownProviders = map[string]bool{
	"gemini":     true,
	"anthropic":  true,
	"openai":     true,
	"openrouter": true,
	"mock":       true,
}

// Validate performs range checks on the loaded configuration. API keys are
// checked later, when a provider is actually built.
func (c *Config) Validate() error {
	if !knownProviders[c.LLM.Provider] {
		return fmt.Errorf("llm.provider %q is not one of gemini, anthropic, openai, openrouter, mock", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be > 0 (got %s)", c.LLM.Timeout)
	}
	if c.LLM.RetryMaxAttempts < 1 {
		return fmt.Errorf("llm.retry_max_attempts must be >= 1 (got %d)", c.LLM.RetryMaxAttempts)
	}

	if err := c.Generation.validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}

	if c.Prompt.Path == "" {
		return fmt.Errorf("prompt.path must not be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

func (g *GenerationConfig) validate() error {
	if g.Temperature < 0 || g.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %v)", g.Temperature)
	}
	if g.TopP < 0 || g.TopP > 1 {
		return fmt.Errorf("top_p must be within [0, 1] (got %v)", g.TopP)
	}
	if g.TopK < 0 {
		return fmt.Errorf("top_k must be >= 0 (got %d)", g.TopK)
	}
	if g.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be > 0 (got %d)", g.MaxOutputTokens)
	}
	return nil
}
