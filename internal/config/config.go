// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (WESAFE_* overrides)
//  2. Config file (~/.wesafe/config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - AI: provider, model selection, temperature, max tokens
//   - Recall: base URL of the passage store, top-k, domain filter
//   - Prompting: rendered-context character bound, expertise strategy
//
// Error Handling:
//   - Sentinel errors for Go-idiomatic checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
//
// Validation is fail-fast: Load() returns an error before the first request
// ever runs, so a missing recall endpoint never surfaces mid-conversation.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingRecallURL indicates the recall service base URL is not set.
	ErrMissingRecallURL = errors.New("missing recall base URL")

	// ErrInvalidRecallURL indicates the recall service base URL is malformed.
	ErrInvalidRecallURL = errors.New("invalid recall base URL")

	// ErrInvalidTopK indicates the recall top-k value is out of range.
	ErrInvalidTopK = errors.New("invalid recall top-k")

	// ErrInvalidMaxContextChars indicates the context bound is out of range.
	ErrInvalidMaxContextChars = errors.New("invalid max context chars")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidJudgeStrategy indicates an unknown expertise strategy.
	ErrInvalidJudgeStrategy = errors.New("invalid judge strategy")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini   = "gemini"
	ProviderOllama   = "ollama"
	ProviderGoogleAI = "googleai"
)

// Expertise estimation strategies used in Config.JudgeStrategy.
const (
	JudgeStrategyLLM       = "llm"
	JudgeStrategyHeuristic = "heuristic"
)

const (
	// DefaultRecallTopK is the default number of passages per recall.
	DefaultRecallTopK = 5

	// DefaultMaxContextChars bounds the rendered context block.
	DefaultMaxContextChars = 3200

	// MaxAllowedContextChars is the absolute maximum for the context bound.
	MaxAllowedContextChars = 100_000
)

// Config stores application configuration.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider"`
	ModelName   string  `mapstructure:"model_name"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host"`

	// Recall service configuration
	RecallBaseURL string `mapstructure:"recall_base_url"`
	RecallTopK    int    `mapstructure:"recall_top_k"`
	RecallDomain  string `mapstructure:"recall_domain"`

	// Prompt composition configuration
	MaxContextChars int `mapstructure:"max_context_chars"`

	// Expertise estimation strategy: "llm" or "heuristic"
	JudgeStrategy string `mapstructure:"judge_strategy"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".wesafe")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_tokens", 2048)

	// Ollama defaults
	v.SetDefault("ollama_host", "http://localhost:11434")

	// Recall defaults
	v.SetDefault("recall_base_url", "http://127.0.0.1")
	v.SetDefault("recall_top_k", DefaultRecallTopK)
	v.SetDefault("recall_domain", "")

	// Prompt defaults
	v.SetDefault("max_context_chars", DefaultMaxContextChars)
	v.SetDefault("judge_strategy", JudgeStrategyLLM)
}

// bindEnvVariables binds environment variable overrides explicitly.
// GEMINI_API_KEY is read directly by Genkit, not via Viper.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys can't fail to bind; a panic here is a bug, not a
	// runtime error.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "WESAFE_PROVIDER")
	mustBind("model_name", "WESAFE_MODEL_NAME")
	mustBind("ollama_host", "WESAFE_OLLAMA_HOST")
	mustBind("recall_base_url", "RAG_CC_URL")
	mustBind("recall_top_k", "RAG_TOP_K")
	mustBind("recall_domain", "RAG_DOMAIN")
	mustBind("max_context_chars", "RAG_MAX_CHARS")
	mustBind("judge_strategy", "WESAFE_JUDGE_STRATEGY")
}

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	switch c.Provider {
	case ProviderGemini, ProviderGoogleAI, ProviderOllama:
	default:
		return fmt.Errorf("%w: %q (supported: gemini, googleai, ollama)", ErrInvalidProvider, c.Provider)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// Temperature range: 0.0 (deterministic) to 2.0 (maximum creativity)
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTokens < 1 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.RecallBaseURL == "" {
		return fmt.Errorf("%w: recall_base_url must be set (or RAG_CC_URL)", ErrMissingRecallURL)
	}
	u, err := url.Parse(c.RecallBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidRecallURL, c.RecallBaseURL)
	}

	if c.RecallTopK < 1 || c.RecallTopK > 50 {
		return fmt.Errorf("%w: must be between 1 and 50, got %d", ErrInvalidTopK, c.RecallTopK)
	}

	if c.MaxContextChars < 1 || c.MaxContextChars > MaxAllowedContextChars {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidMaxContextChars, MaxAllowedContextChars, c.MaxContextChars)
	}

	switch c.JudgeStrategy {
	case JudgeStrategyLLM, JudgeStrategyHeuristic:
	default:
		return fmt.Errorf("%w: %q (supported: llm, heuristic)", ErrInvalidJudgeStrategy, c.JudgeStrategy)
	}

	return nil
}

// FullModelName returns the provider-qualified model name for Genkit.
// Examples: "googleai/gemini-2.5-flash", "ollama/llama3.3".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	switch c.Provider {
	case ProviderOllama:
		return ProviderOllama + "/" + c.ModelName
	default:
		return ProviderGoogleAI + "/" + c.ModelName
	}
}
