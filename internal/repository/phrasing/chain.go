package phrasing

import (
	"context"
	"time"

	"cardadvisor/domain"
	"cardadvisor/pkg/logger"
	"cardadvisor/pkg/metrics"
)

// Chain tries providers in order and returns the first successful reply.
// A StaticProvider is always appended as the terminal entry, so every call
// on the chain succeeds.
type Chain struct {
	providers []Provider
	timeout   time.Duration
}

func NewChain(timeout time.Duration, providers ...Provider) *Chain {
	terminal := false
	if len(providers) > 0 {
		_, terminal = providers[len(providers)-1].(*StaticProvider)
	}
	if !terminal {
		providers = append(providers, NewStaticProvider())
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Chain{providers: providers, timeout: timeout}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Available(_ context.Context) bool { return true }

// Status reports the first available provider and every provider that is
// currently reachable, for the stats endpoint.
func (c *Chain) Status(ctx context.Context) (current string, available []string) {
	for _, p := range c.providers {
		if p.Available(ctx) {
			if current == "" {
				current = p.Name()
			}
			available = append(available, p.Name())
		}
	}
	return current, available
}

func (c *Chain) GenerateResponse(ctx context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error) {
	var reply Reply
	err := c.try(ctx, func(ctx context.Context, p Provider) error {
		r, err := p.GenerateResponse(ctx, history, profile, step)
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	return reply, err
}

func (c *Chain) GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error) {
	var text string
	err := c.try(ctx, func(ctx context.Context, p Provider) error {
		t, err := p.GenerateRecommendationExplanation(ctx, cards, profile)
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	return text, err
}

func (c *Chain) try(ctx context.Context, call func(context.Context, Provider) error) error {
	var lastErr error
	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		if !p.Available(callCtx) {
			cancel()
			metrics.PhrasingRequestsTotal.WithLabelValues(p.Name(), "unavailable").Inc()
			continue
		}
		err := call(callCtx, p)
		cancel()
		if err == nil {
			metrics.PhrasingRequestsTotal.WithLabelValues(p.Name(), "success").Inc()
			return nil
		}
		lastErr = err
		metrics.PhrasingRequestsTotal.WithLabelValues(p.Name(), "error").Inc()
		logger.Warn("phrasing provider failed, falling through", "provider", p.Name(), "error", err.Error())
	}
	return lastErr
}
