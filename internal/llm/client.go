package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/partypulse/partygen/internal/config"
	"github.com/partypulse/partygen/internal/model"
)

// Client invokes the configured chat-completions provider with a bounded
// per-attempt timeout and an exponential-backoff retry loop.
type Client struct {
	provider Provider
	http     *resty.Client

	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	log zerolog.Logger
}

// NewClient builds the client for the provider selected in cfg.
// Returns a *ConfigError when the provider credential is missing.
func NewClient(cfg *config.Config, log zerolog.Logger) (*Client, error) {
	provider, baseURL, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	// The per-attempt timeout aborts the in-flight call, not just the wait;
	// unbounded upstream calls leave dangling connections under network
	// instability.
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &Client{
		provider:     provider,
		http:         hc,
		maxAttempts:  cfg.RetryMaxAttempts,
		initialDelay: cfg.RetryInitialDelay,
		maxDelay:     cfg.RetryMaxDelay,
		multiplier:   cfg.RetryMultiplier,
		log:          log,
	}, nil
}

// ProviderName returns the configured provider identifier, for result meta.
func (c *Client) ProviderName() string { return c.provider.Name() }

// Invoke sends the prompt pair upstream and returns the raw model text.
// Recoverable failures are retried up to the attempt budget with
// delay = min(initialDelay * multiplier^(attempt-1), maxDelay); fatal
// failures and exhaustion propagate as *TransportError.
func (c *Client) Invoke(ctx context.Context, pair model.PromptPair) (string, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialDelay
	exp.Multiplier = c.multiplier
	exp.MaxInterval = c.maxDelay
	exp.RandomizationFactor = 0
	exp.Reset()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		attemptsTotal.WithLabelValues(c.provider.Name()).Inc()

		raw, err := c.attempt(ctx, pair)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return "", err
		}
		if attempt == c.maxAttempts {
			break
		}

		wait := exp.NextBackOff()
		retriesTotal.WithLabelValues(c.provider.Name()).Inc()
		c.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("chat completion attempt failed, retrying")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			// Caller gave up; do not spend further attempts.
			return "", fmt.Errorf("retry abandoned: %w", ctx.Err())
		}
	}

	exhaustedTotal.WithLabelValues(c.provider.Name()).Inc()
	return "", lastErr
}

func (c *Client) attempt(ctx context.Context, pair model.PromptPair) (string, error) {
	resp, err := c.provider.BuildRequest(c.http, pair).
		SetContext(ctx).
		Post("/chat/completions")
	if err != nil {
		return "", newNetworkError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", newHTTPError(resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", model.ErrEmptyResponse
	}
	content := strings.TrimSpace(cr.Choices[0].Message.Content)
	if content == "" {
		return "", model.ErrEmptyResponse
	}
	return content, nil
}
