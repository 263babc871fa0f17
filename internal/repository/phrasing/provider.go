package phrasing

import (
	"context"

	"cardadvisor/domain"
)

// Reply is what a provider hands back for a single conversational turn.
type Reply struct {
	Message     string      `json:"message"`
	NextStep    domain.Step `json:"nextStep"`
	Suggestions []string    `json:"suggestions"`
}

// Provider turns conversation state into user-facing phrasing. Implementations
// may call out to an LLM or serve canned text; callers treat any error as a
// signal to fall through to the next provider in the chain.
type Provider interface {
	Name() string
	Available(ctx context.Context) bool
	GenerateResponse(ctx context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error)
	GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error)
}
