package phrasing

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiProvider phrases responses through Google's Gemini API. Without an
// API key it reports itself unavailable and the chain skips past it.
type GeminiProvider struct {
	config GeminiConfig

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &GeminiProvider{config: cfg}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Available(ctx context.Context) bool {
	if p.config.APIKey == "" {
		return false
	}
	_, err := p.getClient(ctx)
	return err == nil
}

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.initOnce.Do(func() {
		p.client, p.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: p.config.APIKey,
		})
	})
	return p.client, p.initErr
}

func (p *GeminiProvider) GenerateResponse(ctx context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error) {
	text, err := p.generate(ctx, conversationPrompt(history, profile, step))
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Message:     text,
		NextStep:    domain.NextStep(profile, step),
		Suggestions: stepSuggestions[step],
	}, nil
}

func (p *GeminiProvider) GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error) {
	return p.generate(ctx, explanationPrompt(cards, profile))
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", apperr.NewProvider("create gemini client", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := client.Models.GenerateContent(ctx, p.config.Model, contents, nil)
	if err != nil {
		return "", apperr.NewProvider("gemini generate failed", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", apperr.NewProvider("gemini returned empty response", nil)
	}
	return text, nil
}
