// Package services orchestrates the generation pipeline: validation, rate
// limiting, cache lookup, prompt construction, upstream invocation, parsing,
// filtering and cache population.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/partypulse/partygen/internal/api/validate"
	"github.com/partypulse/partygen/internal/cache"
	"github.com/partypulse/partygen/internal/filter"
	"github.com/partypulse/partygen/internal/llm"
	"github.com/partypulse/partygen/internal/model"
	"github.com/partypulse/partygen/internal/prompt"
	"github.com/partypulse/partygen/internal/ratelimit"
)

// promptVersion identifies the prompt revision in result meta.
const promptVersion = "prompt-002"

// Invoker is the upstream call surface the service depends on. *llm.Client
// satisfies it; tests substitute a mock.
type Invoker interface {
	Invoke(ctx context.Context, pair model.PromptPair) (string, error)
	ProviderName() string
}

// GeneratorService runs the pipeline for one request at a time; the cache
// and limiter are the only shared state and guard themselves.
type GeneratorService struct {
	invoker Invoker
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	log     zerolog.Logger
}

// NewGeneratorService wires the pipeline dependencies.
func NewGeneratorService(invoker Invoker, c *cache.Cache, l *ratelimit.Limiter, log zerolog.Logger) *GeneratorService {
	return &GeneratorService{invoker: invoker, cache: c, limiter: l, log: log}
}

// Generate validates req, admits it through the rate limiter and either
// replays a cached result or runs the full pipeline. The returned error is
// one of: *model.ValidationError, model.ErrRateLimited, *llm.TransportError,
// *llm.ParseError, or a context/decode failure from the transport.
func (s *GeneratorService) Generate(ctx context.Context, req *model.GenerationRequest, clientID string) (*model.GenerationResult, error) {
	start := time.Now()

	if err := validate.Request(req); err != nil {
		generateTotal.WithLabelValues("validation_error").Inc()
		return nil, err
	}

	// The explicit style always plays at full intensity.
	if req.IsExplicit() {
		req.Intensity = "hard"
	}

	if !s.limiter.Allow(clientID) {
		generateTotal.WithLabelValues("rate_limited").Inc()
		s.log.Warn().Str("client", clientID).Msg("rate limit exceeded")
		return nil, model.ErrRateLimited
	}

	key := cache.Key(req)
	if cached, ok := s.cache.Get(key); ok {
		cacheHitsTotal.Inc()
		generateTotal.WithLabelValues("cache_hit").Inc()
		s.log.Info().Str("key", key).Msg("cache hit")

		// Reuse the stored items and meta, refresh the per-call fields.
		replay := &model.GenerationResult{Items: cached.Items, Meta: cached.Meta}
		replay.Meta.Cached = true
		replay.Meta.LatencyMs = time.Since(start).Milliseconds()
		replay.Meta.Seed = req.Seed
		return replay, nil
	}
	cacheMissesTotal.Inc()

	pair := prompt.Build(req)

	raw, err := s.invoker.Invoke(ctx, pair)
	if err != nil {
		generateTotal.WithLabelValues("transport_error").Inc()
		s.log.Error().Err(err).Str("provider", s.invoker.ProviderName()).Msg("chat completion failed")
		return nil, err
	}

	parsed, err := llm.Parse(raw)
	if err != nil {
		generateTotal.WithLabelValues("parse_error").Inc()
		s.log.Error().Err(err).Msg("model output unusable")
		return nil, err
	}

	// Drop items whose type disagrees with the requested mode, then apply
	// the denylist. Both count toward filteredCount; items are removed,
	// never backfilled.
	matched := parsed[:0:0]
	for _, it := range parsed {
		if it.Type == req.Mode {
			matched = append(matched, it)
		}
	}
	kept := filter.Items(matched, req.IsExplicit())
	filtered := len(parsed) - len(kept)
	if filtered > 0 {
		itemsFilteredTotal.Add(float64(filtered))
		s.log.Warn().Int("removed", filtered).Msg("items filtered from batch")
	}

	result := &model.GenerationResult{
		Items: kept,
		Meta: model.Meta{
			Provider:      s.invoker.ProviderName(),
			PromptID:      promptVersion,
			LatencyMs:     time.Since(start).Milliseconds(),
			FilteredCount: filtered,
			Cached:        false,
			Seed:          req.Seed,
		},
	}

	// Never memoize a filtered-to-nothing batch.
	if len(kept) > 0 {
		s.cache.Set(key, result)
	}

	generateTotal.WithLabelValues("ok").Inc()
	return result, nil
}
