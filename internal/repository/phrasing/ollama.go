package phrasing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

type OllamaConfig struct {
	BaseURL string
	Model   string
}

// OllamaProvider phrases responses through a locally running Ollama server.
type OllamaProvider struct {
	config OllamaConfig
	client *http.Client
}

func NewOllamaProvider(cfg OllamaConfig) *OllamaProvider {
	return &OllamaProvider{
		config: cfg,
		client: &http.Client{},
	}
}

func (p *OllamaProvider) Name() string { return "ollama" }

// Available probes the tags endpoint with a short deadline so an absent
// server does not stall the chat turn.
func (p *OllamaProvider) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	res, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) GenerateResponse(ctx context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error) {
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

func (p *OllamaProvider) GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error) {
	return p.generate(ctx, explanationPrompt(cards, profile))
}

func (p *OllamaProvider) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", apperr.NewProvider("ollama request failed", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apperr.NewProvider("read ollama response", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", apperr.NewProvider(fmt.Sprintf("ollama returned status %d", res.StatusCode), nil)
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apperr.NewProvider("decode ollama response", err)
	}
	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", apperr.NewProvider("ollama returned empty response", nil)
	}
	return text, nil
}
