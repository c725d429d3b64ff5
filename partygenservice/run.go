// Package partygenservice boots the generation service: configuration,
// the LLM client, cache and rate limiter, the HTTP server, and graceful
// shutdown.
package partygenservice

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/partypulse/partygen/internal/api/http"
	"github.com/partypulse/partygen/internal/cache"
	"github.com/partypulse/partygen/internal/config"
	"github.com/partypulse/partygen/internal/llm"
	"github.com/partypulse/partygen/internal/model"
	"github.com/partypulse/partygen/internal/platform/logger"
	"github.com/partypulse/partygen/internal/ratelimit"
	"github.com/partypulse/partygen/internal/services"
)

// Run starts the HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("partygen-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	invoker := newInvoker(cfg, log)
	svc := services.NewGeneratorService(
		invoker,
		cache.New(cfg.CacheTTL, cfg.CacheMaxSize),
		ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitRequests),
		log,
	)

	router := httpapi.NewRouter(httpapi.NewGenerateHandler(svc))
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newInvoker builds the LLM client. A missing credential does not abort
// startup: health and metrics stay up, and every generate call surfaces
// the configuration error until the operator fixes the deployment.
func newInvoker(cfg *config.Config, log zerolog.Logger) services.Invoker {
	client, err := llm.NewClient(cfg, log)
	if err != nil {
		var ce *llm.ConfigError
		if errors.As(err, &ce) {
			log.Error().
				Str("provider", cfg.LLMProvider).
				Str("reason", ce.Reason).
				Msg("LLM provider unconfigured, generate requests will fail")
			return &unconfiguredInvoker{provider: cfg.LLMProvider, err: ce}
		}
		log.Error().Err(err).Msg("LLM client unavailable")
		return &unconfiguredInvoker{
			provider: cfg.LLMProvider,
			err:      &llm.ConfigError{Provider: cfg.LLMProvider, Reason: err.Error()},
		}
	}

	log.Info().
		Str("provider", client.ProviderName()).
		Dur("request_timeout", cfg.RequestTimeout).
		Int("retry_max_attempts", cfg.RetryMaxAttempts).
		Msg("LLM client ready")
	return client
}

// unconfiguredInvoker stands in when no provider credential is present.
type unconfiguredInvoker struct {
	provider string
	err      *llm.ConfigError
}

func (u *unconfiguredInvoker) Invoke(ctx context.Context, pair model.PromptPair) (string, error) {
	return "", u.err
}

func (u *unconfiguredInvoker) ProviderName() string { return u.provider }

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Generate requests wait on the upstream model plus retries, so the
		// write window must exceed the full retry budget.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
