package config

import (
	"os"

	"github.com/Piyush2510verma/Language/internal/llm"
)

// standardKeyEnv names the provider SDKs' own API key variables.
var standardKeyEnv = map[string]string{
	"gemini":     "GEMINI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// LLMConfig converts the loaded settings into an llm.Config.
//
// Key lookup order for the selected provider: LINGO_<PROVIDER>_API_KEY (or
// YAML), then the provider's standard variable (e.g. GEMINI_API_KEY). When
// neither is set, the first provider with a standard key is used instead.
func (c *Config) LLMConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Timeout = c.LLM.Timeout

	out.Gemini = llm.GeminiConfig{APIKey: c.LLM.GeminiAPIKey, Model: c.LLM.GeminiModel}
	out.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.AnthropicAPIKey, Model: c.LLM.AnthropicModel}
	out.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAIAPIKey, Model: c.LLM.OpenAIModel, BaseURL: c.LLM.OpenAIBaseURL}
	out.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouterAPIKey, Model: c.LLM.OpenRouterModel}

	out.Retry.MaxAttempts = c.LLM.RetryMaxAttempts
	out.Retry.InitialWait = c.LLM.RetryInitialWait
	out.Retry.MaxWait = c.LLM.RetryMaxWait

	out.Profile = llm.Profile{
		Temperature:      c.Generation.Temperature,
		TopP:             c.Generation.TopP,
		TopK:             c.Generation.TopK,
		MaxOutputTokens:  c.Generation.MaxOutputTokens,
		ResponseMIMEType: c.Generation.ResponseMIMEType,
	}

	if out.HasKey() {
		return out
	}

	if k := os.Getenv(standardKeyEnv[out.Provider]); k != "" {
		setKey(&out, out.Provider, k)
		return out
	}

	if found, ok := llm.DiscoverConfig(); ok {
		out.Provider = found.Provider
		setKey(&out, found.Provider, apiKey(found))
	}
	return out
}

func setKey(cfg *llm.Config, provider, key string) {
	switch provider {
	case "gemini":
		cfg.Gemini.APIKey = key
	case "anthropic":
		cfg.Anthropic.APIKey = key
	case "openai":
		cfg.OpenAI.APIKey = key
	case "openrouter":
		cfg.OpenRouter.APIKey = key
	}
}

func apiKey(cfg llm.Config) string {
	switch cfg.Provider {
	case "gemini":
		return cfg.Gemini.APIKey
	case "anthropic":
		return cfg.Anthropic.APIKey
	case "openai":
		return cfg.OpenAI.APIKey
	case "openrouter":
		return cfg.OpenRouter.APIKey
	}
	return ""
}
