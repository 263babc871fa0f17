// Package session holds per-conversation state. The memory backend is the
// default; a redis backend is available for deployments that want native
// TTL eviction.
package session

import (
	"context"
	"time"

	"cardadvisor/domain"
)

// ProfileUpdate is a partial profile mutation. Nil fields are untouched;
// SpendingHabits and Preferences are deep-merged rather than replaced.
type ProfileUpdate struct {
	MonthlyIncome  *int
	CreditScore    *domain.CreditScore
	SpendingHabits map[string]int
	Preferences    *domain.Preferences
}

// Store is the session repository contract. Per-session calls are assumed
// serialized by the caller; implementations only guard the map itself.
type Store interface {
	// Create registers a fresh session under id, overwriting any previous
	// entry with the same id.
	Create(ctx context.Context, id string) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (domain.Session, error)
	SetStep(ctx context.Context, id string, step domain.Step) error
	AppendMessage(ctx context.Context, id string, role domain.MessageRole, text string) error
	MarkQuestionAsked(ctx context.Context, id string, question string) error
	SetRecommendations(ctx context.Context, id string, recs []domain.ScoredCard) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.SessionStats, error)
	Close() error
}

func newSession(id string, now time.Time) domain.Session {
	return domain.Session{
		ID:          id,
		Profile:     domain.NewUserProfile(),
		ChatHistory: []domain.ChatMessage{},
		CurrentStep: domain.StepGreeting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// applyUpdate merges a partial update into a profile. Scalars overwrite,
// sub-structures merge field-by-field, and completeness is recomputed by
// the caller afterwards.
func applyUpdate(profile *domain.UserProfile, update ProfileUpdate) {
	if update.MonthlyIncome != nil {
		profile.MonthlyIncome = *update.MonthlyIncome
	}
	if update.CreditScore != nil {
		profile.CreditScore = *update.CreditScore
	}
	for category, amount := range update.SpendingHabits {
		profile.SpendingHabits[category] = amount
	}
	if update.Preferences != nil {
		mergePreferences(&profile.Preferences, *update.Preferences)
	}
}

func mergePreferences(dst *domain.Preferences, src domain.Preferences) {
	if src.RewardType != "" {
		dst.RewardType = src.RewardType
	}
	if len(src.Benefits) > 0 {
		dst.Benefits = src.Benefits
	}
	if src.MaxAnnualFee != nil {
		dst.MaxAnnualFee = src.MaxAnnualFee
	}
	if len(src.ExistingCards) > 0 {
		dst.ExistingCards = src.ExistingCards
	}
}

func cloneSession(s domain.Session) domain.Session {
	out := s
	out.Profile = cloneProfile(s.Profile)
	out.ChatHistory = append([]domain.ChatMessage(nil), s.ChatHistory...)
	out.QuestionsAsked = append([]string(nil), s.QuestionsAsked...)
	out.Recommendations = append([]domain.ScoredCard(nil), s.Recommendations...)
	return out
}

func cloneProfile(p domain.UserProfile) domain.UserProfile {
	out := p
	out.SpendingHabits = make(map[string]int, len(p.SpendingHabits))
	for k, v := range p.SpendingHabits {
		out.SpendingHabits[k] = v
	}
	out.Preferences.Benefits = append([]string(nil), p.Preferences.Benefits...)
	out.Preferences.ExistingCards = append([]string(nil), p.Preferences.ExistingCards...)
	if p.Preferences.MaxAnnualFee != nil {
		fee := *p.Preferences.MaxAnnualFee
		out.Preferences.MaxAnnualFee = &fee
	}
	return out
}
