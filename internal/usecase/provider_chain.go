package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"chat-orchestrator/internal/domain"
)

// DegradedMessage is the fixed reply returned when every provider fails. It
// is a valid response: persisted and returned to the user, never an error.
const DegradedMessage = "Limit reached. Please try again later after some time."

// ProviderChain tries an ordered list of generation providers, one attempt
// each, and returns the first non-empty text. It implements domain.Generator
// itself, so a chain can stand anywhere a single provider can.
type ProviderChain struct {
	providers      []domain.Generator
	limiters       []*rate.Limiter
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// NewProviderChain builds a chain over providers in priority order.
// ratePerMin caps client-side attempts per provider; a provider whose limiter
// is exhausted counts as a failed attempt and the chain advances.
func NewProviderChain(providers []domain.Generator, attemptTimeout time.Duration, ratePerMin int, logger *slog.Logger) *ProviderChain {
	limiters := make([]*rate.Limiter, len(providers))
	for i := range providers {
		limiters[i] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin)
	}
	return &ProviderChain{
		providers:      providers,
		limiters:       limiters,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Generate walks the provider list sequentially. The secondary provider is
// only attempted after the primary attempt settles, never concurrently.
func (c *ProviderChain) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	for i, provider := range c.providers {
		if !c.limiters[i].Allow() {
			c.logger.Warn("provider_rate_limited", slog.String("provider", provider.Name()))
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := provider.Generate(attemptCtx, systemPrompt, userPrompt)
		cancel()

		if err != nil {
			c.logger.Warn("provider_attempt_failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Warn("provider_returned_empty", slog.String("provider", provider.Name()))
			continue
		}
		return text, nil
	}

	c.logger.Warn("all_providers_failed", slog.Int("provider_count", len(c.providers)))
	return DegradedMessage, nil
}

func (c *ProviderChain) Name() string { return "provider-chain" }

var _ domain.Generator = (*ProviderChain)(nil)
