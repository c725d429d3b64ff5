package llm

import (
	"github.com/go-resty/resty/v2"

	"github.com/partypulse/partygen/internal/config"
	"github.com/partypulse/partygen/internal/model"
)

// chatMessage / chatRequest / chatResponse mirror the OpenAI-compatible
// chat-completions wire format both providers speak.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Provider knows how to address one upstream LLM vendor. Implementations
// are selected once at configuration time; the transport never branches on
// provider names afterwards.
type Provider interface {
	Name() string
	BuildRequest(c *resty.Client, pair model.PromptPair) *resty.Request
}

// openAICompatProvider covers every vendor exposing the OpenAI-compatible
// chat-completions surface; only base URL, model and credential differ.
type openAICompatProvider struct {
	name     string
	model    string
	apiKey   string
	sampling samplingParams
}

type samplingParams struct {
	temperature      float64
	maxTokens        int
	frequencyPenalty float64
	presencePenalty  float64
}

func (p *openAICompatProvider) Name() string { return p.name }

func (p *openAICompatProvider) BuildRequest(c *resty.Client, pair model.PromptPair) *resty.Request {
	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: pair.System},
			{Role: "user", Content: pair.User},
		},
		Temperature:      p.sampling.temperature,
		MaxTokens:        p.sampling.maxTokens,
		FrequencyPenalty: p.sampling.frequencyPenalty,
		PresencePenalty:  p.sampling.presencePenalty,
	}
	return c.R().
		SetHeader("Content-Type", "application/json").
		SetAuthToken(p.apiKey).
		SetBody(&body)
}

// NewProvider builds the provider selected by cfg. A missing credential is a
// ConfigError so operators can tell it apart from user-caused failures.
func NewProvider(cfg *config.Config) (Provider, string, error) {
	var (
		key     string
		mdl     string
		baseURL string
	)
	switch cfg.LLMProvider {
	case config.ProviderTongyi:
		key, mdl, baseURL = cfg.TongyiAPIKey, cfg.TongyiModel, cfg.TongyiBaseURL
	case config.ProviderDeepSeek:
		key, mdl, baseURL = cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.DeepSeekBaseURL
	default:
		return nil, "", &ConfigError{Provider: cfg.LLMProvider, Reason: "unknown provider"}
	}
	if key == "" {
		return nil, "", &ConfigError{Provider: cfg.LLMProvider, Reason: "API key not set"}
	}
	p := &openAICompatProvider{
		name:   cfg.LLMProvider,
		model:  mdl,
		apiKey: key,
		sampling: samplingParams{
			temperature:      cfg.Temperature,
			maxTokens:        cfg.MaxTokens,
			frequencyPenalty: cfg.FrequencyPenalty,
			presencePenalty:  cfg.PresencePenalty,
		},
	}
	return p, baseURL, nil
}
