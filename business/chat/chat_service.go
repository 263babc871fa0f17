// Package chat drives the guided conversation: one question per turn,
// extraction of the answer into the profile, and a single recommendation
// run once the profile is complete.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cardadvisor/business/extract"
	"cardadvisor/domain"
	"cardadvisor/internal/repository/phrasing"
	"cardadvisor/internal/session"
	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
	"cardadvisor/pkg/metrics"
)

// SessionStore contract interface
type SessionStore interface {
	Create(ctx context.Context, id string) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	UpdateProfile(ctx context.Context, id string, update session.ProfileUpdate) (domain.Session, error)
	SetStep(ctx context.Context, id string, step domain.Step) error
	AppendMessage(ctx context.Context, id string, role domain.MessageRole, text string) error
	MarkQuestionAsked(ctx context.Context, id string, question string) error
	SetRecommendations(ctx context.Context, id string, recs []domain.ScoredCard) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.SessionStats, error)
}

// Phraser contract interface
type Phraser interface {
	GenerateResponse(ctx context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (phrasing.Reply, error)
	GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error)
	Status(ctx context.Context) (current string, available []string)
}

// Recommender contract interface
type Recommender interface {
	GenerateRecommendations(ctx context.Context, profile domain.UserProfile) ([]domain.ScoredCard, error)
}

// Turn is what the user sees after one exchange.
type Turn struct {
	SessionID         string              `json:"sessionId"`
	Message           string              `json:"message"`
	Suggestions       []string            `json:"suggestions,omitempty"`
	CurrentStep       domain.Step         `json:"currentStep"`
	IsProfileComplete bool                `json:"isProfileComplete"`
	Recommendations   []domain.ScoredCard `json:"recommendations,omitempty"`
}

// Stats combines session aggregates with phrasing provider health.
type Stats struct {
	domain.SessionStats
	PhrasingProvider   string   `json:"phrasingProvider"`
	AvailableProviders []string `json:"availableProviders"`
}

type ChatService struct {
	store       SessionStore
	phraser     Phraser
	recommender Recommender
}

func NewChatService(store SessionStore, phraser Phraser, recommender Recommender) *ChatService {
	return &ChatService{
		store:       store,
		phraser:     phraser,
		recommender: recommender,
	}
}

// StartSession opens a fresh conversation and greets the user. The session
// stays on the greeting step; the first user message is income-extracted
// there and the step only advances once that message arrives.
func (s *ChatService) StartSession(ctx context.Context) (Turn, error) {
	if err := ctx.Err(); err != nil {
		return Turn{}, fmt.Errorf("context error: %w", err)
	}

	turn, err := s.begin(ctx, uuid.NewString())
	if err != nil {
		return Turn{}, err
	}
	metrics.SessionsStarted.Inc()
	return turn, nil
}

// ResetSession discards any state under id and starts over with the same id.
func (s *ChatService) ResetSession(ctx context.Context, id string) (Turn, error) {
	if err := ctx.Err(); err != nil {
		return Turn{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil && !apperr.IsNotFound(err) {
		return Turn{}, err
	}
	return s.begin(ctx, id)
}

func (s *ChatService) begin(ctx context.Context, id string) (Turn, error) {
	sess, err := s.store.Create(ctx, id)
	if err != nil {
		logger.Error("failed to create session", err)
		return Turn{}, err
	}

	reply, err := s.phraser.GenerateResponse(ctx, sess.ChatHistory, sess.Profile, domain.StepGreeting)
	if err != nil {
		logger.Error("failed to phrase greeting", err)
		return Turn{}, err
	}

	if err := s.store.AppendMessage(ctx, id, domain.RoleAssistant, reply.Message); err != nil {
		return Turn{}, err
	}
	if err := s.store.MarkQuestionAsked(ctx, id, string(domain.StepGreeting)); err != nil {
		return Turn{}, err
	}

	return Turn{
		SessionID:   id,
		Message:     reply.Message,
		Suggestions: reply.Suggestions,
		CurrentStep: domain.StepGreeting,
	}, nil
}

// SendMessage runs one turn of the state machine: record the message,
// extract the field the current step asked for, then either ask the next
// question or, the first time the profile completes, produce recommendations.
func (s *ChatService) SendMessage(ctx context.Context, id, message string) (Turn, error) {
	start := time.Now()
	defer func() {
		metrics.ChatMessageLatency.Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return Turn{}, fmt.Errorf("context error: %w", err)
	}
	if strings.TrimSpace(message) == "" {
		return Turn{}, apperr.NewValidation("message must not be empty")
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Turn{}, err
	}

	if err := s.store.AppendMessage(ctx, id, domain.RoleUser, message); err != nil {
		return Turn{}, err
	}

	if update := extractUpdate(sess.CurrentStep, message); update != nil {
		sess, err = s.store.UpdateProfile(ctx, id, *update)
	} else {
		sess, err = s.store.Get(ctx, id)
	}
	if err != nil {
		return Turn{}, err
	}

	if sess.Profile.IsComplete() && sess.CurrentStep != domain.StepComplete {
		return s.completeProfile(ctx, sess)
	}

	reply, err := s.phraser.GenerateResponse(ctx, sess.ChatHistory, sess.Profile, sess.CurrentStep)
	if err != nil {
		logger.Error("failed to phrase reply", err)
		return Turn{}, err
	}

	next := reply.NextStep
	if stepRank(next) < stepRank(sess.CurrentStep) {
		next = sess.CurrentStep
	}

	if err := s.store.AppendMessage(ctx, id, domain.RoleAssistant, reply.Message); err != nil {
		return Turn{}, err
	}
	if err := s.store.MarkQuestionAsked(ctx, id, string(sess.CurrentStep)); err != nil {
		return Turn{}, err
	}
	if err := s.store.SetStep(ctx, id, next); err != nil {
		return Turn{}, err
	}

	return Turn{
		SessionID:         id,
		Message:           reply.Message,
		Suggestions:       reply.Suggestions,
		CurrentStep:       next,
		IsProfileComplete: sess.Profile.IsComplete(),
		Recommendations:   sess.Recommendations,
	}, nil
}

// completeProfile runs the recommendation engine exactly once per session
// and delivers the explanation as the assistant's reply.
func (s *ChatService) completeProfile(ctx context.Context, sess domain.Session) (Turn, error) {
	recs, err := s.recommender.GenerateRecommendations(ctx, sess.Profile)
	if err != nil {
		logger.Error("failed to generate recommendations", err)
		return Turn{}, err
	}

	if err := s.store.SetRecommendations(ctx, sess.ID, recs); err != nil {
		return Turn{}, err
	}

	explanation, err := s.phraser.GenerateRecommendationExplanation(ctx, recs, sess.Profile)
	if err != nil {
		logger.Error("failed to phrase explanation", err)
		return Turn{}, err
	}

	if err := s.store.AppendMessage(ctx, sess.ID, domain.RoleAssistant, explanation); err != nil {
		return Turn{}, err
	}
	if err := s.store.SetStep(ctx, sess.ID, domain.StepComplete); err != nil {
		return Turn{}, err
	}
	metrics.ProfilesCompleted.Inc()

	return Turn{
		SessionID:         sess.ID,
		Message:           explanation,
		Suggestions:       phrasing.Suggestions(domain.StepComplete),
		CurrentStep:       domain.StepComplete,
		IsProfileComplete: true,
		Recommendations:   recs,
	}, nil
}

func (s *ChatService) GetSession(ctx context.Context, id string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("context error: %w", err)
	}
	return s.store.Get(ctx, id)
}

func (s *ChatService) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("context error: %w", err)
	}

	sessionStats, err := s.store.Stats(ctx)
	if err != nil {
		logger.Error("failed to read session stats", err)
		return Stats{}, err
	}
	current, available := s.phraser.Status(ctx)
	return Stats{
		SessionStats:       sessionStats,
		PhrasingProvider:   current,
		AvailableProviders: available,
	}, nil
}

// extractUpdate maps the step's question onto the matching extractor. A nil
// return means the message did not yield a usable value.
func extractUpdate(step domain.Step, message string) *session.ProfileUpdate {
	switch step {
	case domain.StepGreeting, domain.StepIncome:
		if income, ok := extract.Income(message); ok {
			return &session.ProfileUpdate{MonthlyIncome: &income}
		}
	case domain.StepCreditScore:
		if score, ok := extract.CreditScore(message); ok {
			return &session.ProfileUpdate{CreditScore: &score}
		}
	case domain.StepSpending:
		if spending, ok := extract.Spending(message); ok {
			return &session.ProfileUpdate{SpendingHabits: spending}
		}
	case domain.StepPreferences, domain.StepComplete:
		var update session.ProfileUpdate
		if prefs, ok := extract.Preferences(message); ok {
			update.Preferences = &prefs
		}
		if strings.Contains(strings.ToLower(message), "fee") {
			if fee, ok := extract.AnnualFee(message); ok {
				if update.Preferences == nil {
					update.Preferences = &domain.Preferences{}
				}
				update.Preferences.MaxAnnualFee = &fee
			}
		}
		if update.Preferences != nil {
			return &update
		}
	case domain.StepAnnualFee:
		if fee, ok := extract.AnnualFee(message); ok {
			return &session.ProfileUpdate{Preferences: &domain.Preferences{MaxAnnualFee: &fee}}
		}
	}
	return nil
}

func stepRank(step domain.Step) int {
	if step == domain.StepComplete {
		return len(domain.StepOrder)
	}
	for i, s := range domain.StepOrder {
		if s == step {
			return i
		}
	}
	return len(domain.StepOrder)
}
