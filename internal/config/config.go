package config

import "time"

// Config is the root application configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Prompt     PromptConfig     `yaml:"prompt"`
	Log        LogConfig        `yaml:"log"`
}

// LLMConfig selects and authenticates the completion provider.
type LLMConfig struct {
	Provider string        `yaml:"provider" env:"LINGO_LLM_PROVIDER" env-default:"gemini"`
	Timeout  time.Duration `yaml:"timeout"  env:"LINGO_LLM_TIMEOUT"  env-default:"30s"`

	GeminiAPIKey string `yaml:"gemini_api_key" env:"LINGO_GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model"   env:"LINGO_GEMINI_MODEL"   env-default:"gemini-flash"`

	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"LINGO_ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model"   env:"LINGO_ANTHROPIC_MODEL"   env-default:"claude-haiku"`

	OpenAIAPIKey  string `yaml:"openai_api_key"  env:"LINGO_OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"openai_model"    env:"LINGO_OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"LINGO_OPENAI_BASE_URL"`

	OpenRouterAPIKey string `yaml:"openrouter_api_key" env:"LINGO_OPENROUTER_API_KEY"`
	OpenRouterModel  string `yaml:"openrouter_model"   env:"LINGO_OPENROUTER_MODEL"   env-default:"google/gemini-2.0-flash-001"`

	RetryMaxAttempts int           `yaml:"retry_max_attempts" env:"LINGO_LLM_RETRY_MAX_ATTEMPTS" env-default:"3"`
	RetryInitialWait time.Duration `yaml:"retry_initial_wait" env:"LINGO_LLM_RETRY_INITIAL_WAIT" env-default:"1s"`
	RetryMaxWait     time.Duration `yaml:"retry_max_wait"     env:"LINGO_LLM_RETRY_MAX_WAIT"     env-default:"10s"`
}

// GenerationConfig is the sampling profile applied to every completion.
type GenerationConfig struct {
	Temperature      float64 `yaml:"temperature"        env:"LINGO_GEN_TEMPERATURE"        env-default:"1"`
	TopP             float64 `yaml:"top_p"              env:"LINGO_GEN_TOP_P"              env-default:"0.95"`
	TopK             int     `yaml:"top_k"              env:"LINGO_GEN_TOP_K"              env-default:"40"`
	MaxOutputTokens  int     `yaml:"max_output_tokens"  env:"LINGO_GEN_MAX_OUTPUT_TOKENS"  env-default:"8192"`
	ResponseMIMEType string  `yaml:"response_mime_type" env:"LINGO_GEN_RESPONSE_MIME_TYPE" env-default:"text/plain"`
}

// PromptConfig locates the prompt template file.
type PromptConfig struct {
	Path string `yaml:"path" env:"LINGO_PROMPT" env-default:"prompt.json"`
}

// LogConfig holds logging settings. When File is set, logs are written to a
// size-rotated file instead of stderr.
type LogConfig struct {
	Level      string `yaml:"level"        env:"LINGO_LOG_LEVEL"        env-default:"info"`
	Format     string `yaml:"format"       env:"LINGO_LOG_FORMAT"       env-default:"text"`
	File       string `yaml:"file"         env:"LINGO_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"  env:"LINGO_LOG_MAX_SIZE_MB"  env-default:"10"`
	MaxBackups int    `yaml:"max_backups"  env:"LINGO_LOG_MAX_BACKUPS"  env-default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LINGO_LOG_MAX_AGE_DAYS" env-default:"28"`
}
