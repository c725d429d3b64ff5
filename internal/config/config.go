package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Supported LLM providers.
const (
	ProviderTongyi   = "tongyi"
	ProviderDeepSeek = "deepseek"
)

// Config holds the configuration for the generation service.
// Environment variables are automatically parsed from the PARTYGEN_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// LLM provider selection: tongyi or deepseek
	LLMProvider string `envconfig:"LLM_PROVIDER" default:"deepseek"`

	TongyiAPIKey string `envconfig:"TONGYI_API_KEY" default:""`
	TongyiModel  string `envconfig:"TONGYI_MODEL" default:"qwen-plus"`

	DeepSeekAPIKey string `envconfig:"DEEPSEEK_API_KEY" default:""`
	DeepSeekModel  string `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`

	// Base URL overrides, used by tests against a fake upstream.
	TongyiBaseURL   string `envconfig:"TONGYI_BASE_URL" default:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	DeepSeekBaseURL string `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com/v1"`

	// Sampling parameters sent with every chat-completions call.
	Temperature      float64 `envconfig:"TEMPERATURE" default:"1.0"`
	MaxTokens        int     `envconfig:"MAX_TOKENS" default:"1000"`
	FrequencyPenalty float64 `envconfig:"FREQUENCY_PENALTY" default:"1.5"`
	PresencePenalty  float64 `envconfig:"PRESENCE_PENALTY" default:"1.2"`

	// Outbound call timeout and retry policy.
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	RetryMaxAttempts  int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryInitialDelay time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"1s"`
	RetryMaxDelay     time.Duration `envconfig:"RETRY_MAX_DELAY" default:"5s"`
	RetryMultiplier   float64       `envconfig:"RETRY_MULTIPLIER" default:"2"`

	// Response cache.
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"600s"`
	CacheMaxSize int           `envconfig:"CACHE_MAX_SIZE" default:"100"`

	// Sliding-window rate limit per client.
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"20"`
}

// ResolveDefaults validates the provider selection and its credential.
func (c *Config) ResolveDefaults() error {
	switch c.LLMProvider {
	case ProviderTongyi, ProviderDeepSeek:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be >= 1, got %d", c.RetryMaxAttempts)
	}
	if c.CacheMaxSize < 1 {
		return fmt.Errorf("CACHE_MAX_SIZE must be >= 1, got %d", c.CacheMaxSize)
	}
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.RateLimitRequests)
	}
	return nil
}

// APIKey returns the credential for the selected provider. An empty result
// means the deployment is misconfigured; callers surface it as a
// configuration error rather than a transport failure.
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderTongyi {
		return c.TongyiAPIKey
	}
	return c.DeepSeekAPIKey
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with PARTYGEN_
// Example: PARTYGEN_LLM_PROVIDER, PARTYGEN_HTTP_PORT
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PARTYGEN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("llm_provider", cfg.LLMProvider).
		Str("api_key_present", func() string {
			if cfg.APIKey() != "" {
				return "true"
			}
			return "false"
		}()).
		Dur("request_timeout", cfg.RequestTimeout).
		Int("retry_max_attempts", cfg.RetryMaxAttempts).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("cache_max_size", cfg.CacheMaxSize).
		Int("rate_limit_requests", cfg.RateLimitRequests).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment: EnvTesting,
		HTTPPort:    8080,

		LLMProvider:    ProviderDeepSeek,
		DeepSeekAPIKey: "test-key",
		DeepSeekModel:  "deepseek-chat",
		TongyiModel:    "qwen-plus",

		Temperature:      1.0,
		MaxTokens:        1000,
		FrequencyPenalty: 1.5,
		PresencePenalty:  1.2,

		RequestTimeout:    5 * time.Second,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Millisecond,
		RetryMaxDelay:     5 * time.Millisecond,
		RetryMultiplier:   2,

		CacheTTL:     600 * time.Second,
		CacheMaxSize: 100,

		RateLimitWindow:   60 * time.Second,
		RateLimitRequests: 20,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
