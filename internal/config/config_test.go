package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no provider keys, so
// a developer's .env, lingo.yaml or exported keys cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{
		"LINGO_CONFIG", "LINGO_LLM_PROVIDER", "LINGO_GEMINI_API_KEY", "LINGO_OPENAI_API_KEY",
		"LINGO_ANTHROPIC_API_KEY", "LINGO_OPENROUTER_API_KEY", "LINGO_PROMPT", "LINGO_LOG_FORMAT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, 3, cfg.LLM.RetryMaxAttempts)
	assert.Equal(t, 1.0, cfg.Generation.Temperature)
	assert.Equal(t, 0.95, cfg.Generation.TopP)
	assert.Equal(t, 40, cfg.Generation.TopK)
	assert.Equal(t, 8192, cfg.Generation.MaxOutputTokens)
	assert.Equal(t, "text/plain", cfg.Generation.ResponseMIMEType)
	assert.Equal(t, "prompt.json", cfg.Prompt.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", `
llm:
  provider: openai
  openai_model: gpt-4.1-mini
  timeout: 5s
generation:
  temperature: 0.7
log:
  format: json
`)
	t.Setenv("LINGO_CONFIG", path)
	t.Setenv("LINGO_LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.OpenAIModel)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
	assert.Equal(t, 40, cfg.Generation.TopK, "unset fields keep defaults")
	assert.Equal(t, "text", cfg.Log.Format, "env overrides yaml")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".env", "LINGO_LLM_PROVIDER=mock\n")
	t.Cleanup(func() { os.Unsetenv("LINGO_LLM_PROVIDER") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("LINGO_CONFIG", "/nonexistent/lingo.yaml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LLM:        LLMConfig{Provider: "gemini", Timeout: time.Second, RetryMaxAttempts: 1},
			Generation: GenerationConfig{Temperature: 1, TopP: 0.95, TopK: 40, MaxOutputTokens: 10},
			Prompt:     PromptConfig{Path: "prompt.json"},
			Log:        LogConfig{Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = 0 }},
		{"no attempts", func(c *Config) { c.LLM.RetryMaxAttempts = 0 }},
		{"temperature too high", func(c *Config) { c.Generation.Temperature = 3 }},
		{"top_p above one", func(c *Config) { c.Generation.TopP = 1.5 }},
		{"negative top_k", func(c *Config) { c.Generation.TopK = -1 }},
		{"no output tokens", func(c *Config) { c.Generation.MaxOutputTokens = 0 }},
		{"empty prompt path", func(c *Config) { c.Prompt.Path = "" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLLMConfig(t *testing.T) {
	isolate(t)

	t.Run("explicit key", func(t *testing.T) {
		cfg := Config{
			LLM:        LLMConfig{Provider: "anthropic", AnthropicAPIKey: "sk-ant", AnthropicModel: "claude-haiku", Timeout: time.Second, RetryMaxAttempts: 2},
			Generation: GenerationConfig{Temperature: 1, TopP: 0.9, TopK: 20, MaxOutputTokens: 512, ResponseMIMEType: "text/plain"},
		}
		out := cfg.LLMConfig()
		assert.Equal(t, "anthropic", out.Provider)
		assert.Equal(t, "sk-ant", out.Anthropic.APIKey)
		assert.Equal(t, 2, out.Retry.MaxAttempts)
		assert.Equal(t, 20, out.Profile.TopK)
		assert.Equal(t, 512, out.Profile.MaxOutputTokens)
		assert.NoError(t, out.Validate())
	})

	t.Run("standard key for selected provider", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg := Config{LLM: LLMConfig{Provider: "gemini"}}
		out := cfg.LLMConfig()
		assert.Equal(t, "gemini", out.Provider)
		assert.Equal(t, "g-key", out.Gemini.APIKey)
	})

	t.Run("falls back to discovered provider", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "or-key")
		cfg := Config{LLM: LLMConfig{Provider: "gemini"}}
		out := cfg.LLMConfig()
		assert.Equal(t, "openrouter", out.Provider)
		assert.Equal(t, "or-key", out.OpenRouter.APIKey)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		cfg := Config{LLM: LLMConfig{Provider: "gemini"}}
		out := cfg.LLMConfig()
		assert.Error(t, out.Validate())
	})
}

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()

	good := writeFile(t, dir, "prompt.json", `{"systemRole": "You are a friendly language tutor."}`)
	p, err := LoadPrompt(good)
	require.NoError(t, err)
	assert.Equal(t, "You are a friendly language tutor.", p.SystemRole)

	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"systemRole": `},
		{"missing field", `{"role": "tutor"}`},
		{"blank role", `{"systemRole": "   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrompt([]byte(tt.content))
			assert.Error(t, err)
		})
	}

	_, err = LoadPrompt(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}
