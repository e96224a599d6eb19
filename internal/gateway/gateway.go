// Package gateway implements the AI gateway on top of the configured
// completion providers. Each provider sits behind its own circuit breaker and
// requests are routed to a provider by model name.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/aibridge/internal/domain/model"
	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/internal/resilience"
)

// Provider is a single completion backend.
type Provider interface {
	// Name is the provider identifier used for routing and in ModelInfo.
	Name() string
	Complete(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error)
	Models(ctx context.Context) ([]model.ModelInfo, error)
}

// Config holds gateway settings.
type Config struct {
	DefaultModel         string
	BreakerMaxFailures   int
	BreakerResetInterval time.Duration
}

type guardedProvider struct {
	Provider
	breaker *resilience.CircuitBreaker
}

// Gateway routes completion and listing calls to the configured providers.
// It is safe for concurrent use.
type Gateway struct {
	cfg       Config
	log       *slog.Logger
	providers []guardedProvider
	byName    map[string]int
}

// New creates a Gateway over providers, kept in the given order. A provider
// registered twice under the same name is only used once.
func New(cfg Config, log *slog.Logger, providers ...Provider) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		log:    log.With("component", "ai_gateway"),
		byName: make(map[string]int, len(providers)),
	}

	for _, p := range providers {
		if p == nil {
			continue
		}
		if _, dup := g.byName[p.Name()]; dup {
			g.log.Warn("Ignoring duplicate AI provider", "provider", p.Name())
			continue
		}
		g.byName[p.Name()] = len(g.providers)
		g.providers = append(g.providers, guardedProvider{
			Provider: p,
			breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
				Name:          p.Name(),
				MaxFailures:   cfg.BreakerMaxFailures,
				ResetInterval: cfg.BreakerResetInterval,
				IsExcluded:    isRequestError,
				Logger:        g.log,
			}),
		})
	}

	return g
}

// Providers returns the names of the configured providers in routing order.
func (g *Gateway) Providers() []string {
	names := make([]string, 0, len(g.providers))
	for _, p := range g.providers {
		names = append(names, p.Name())
	}
	return names
}

// Completion sends messages to the provider chosen for modelName and returns
// its text. An empty modelName selects the configured default model. Every
// failure, including a blank answer, is a *errors.GatewayError.
func (g *Gateway) Completion(ctx context.Context, modelName string, messages []model.ChatMessage) (string, error) {
	if len(g.providers) == 0 {
		return "", errs.NewGatewayError("", "no AI provider configured", nil)
	}
	if len(messages) == 0 {
		return "", errs.NewGatewayError("", "completion request has no messages", nil)
	}

	if modelName == "" {
		modelName = g.cfg.DefaultModel
	}
	p, resolved := g.resolve(modelName)

	start := time.Now()
	text, err := resilience.Call(ctx, p.breaker, func(ctx context.Context) (string, error) {
		return p.Complete(ctx, resolved, messages)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			g.log.WarnContext(ctx, "Provider unavailable, failing fast",
				"provider", p.Name(),
				"model", resolved,
				"breaker", p.breaker.State())
			return "", asGatewayError(p.Name(), "provider unavailable", err)
		}
		g.log.ErrorContext(ctx, "Completion failed",
			"provider", p.Name(),
			"model", resolved,
			"request_error", isRequestError(err),
			"breaker", p.breaker.State(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", asGatewayError(p.Name(), "completion failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errs.NewGatewayError(p.Name(), "empty completion for model "+resolved, nil)
	}

	g.log.DebugContext(ctx, "Completion succeeded",
		"provider", p.Name(),
		"model", resolved,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))
	return text, nil
}

// ListModels aggregates the models of every provider in routing order. A
// provider that fails is logged and skipped; the call only fails when every
// provider does. With no providers configured it returns an empty slice.
func (g *Gateway) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	models := []model.ModelInfo{}
	var failures []error

	for _, p := range g.providers {
		list, err := resilience.Call(ctx, p.breaker, p.Models)
		if err != nil {
			g.log.WarnContext(ctx, "Failed to list models", "provider", p.Name(), "error", err)
			failures = append(failures, asGatewayError(p.Name(), "list models failed", err))
			continue
		}
		models = append(models, list...)
	}

	if len(g.providers) > 0 && len(failures) == len(g.providers) {
		return nil, errs.NewGatewayError("", "all providers failed to list models", errors.Join(failures...))
	}
	return models, nil
}

func asGatewayError(provider, msg string, err error) error {
	var gwErr *errs.GatewayError
	if errors.As(err, &gwErr) {
		return err
	}
	return errs.NewGatewayError(provider, msg, err)
}

// String is used in startup logs.
func (g *Gateway) String() string {
	return fmt.Sprintf("gateway(providers=%v, default_model=%s)", g.Providers(), g.cfg.DefaultModel)
}
