package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cardadvisor/business/catalog"
	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
)

const maxRecommendations = 5

// CardCatalog is the slice of the catalog service the engine needs.
type CardCatalog interface {
	GetAll() []domain.Card
	GetByID(id string) (domain.Card, error)
}

// AdvisorService scores catalog cards against a user profile and produces
// ranked, explained recommendations. Pure computation; same profile and
// catalog always yield identical ordered output.
type AdvisorService struct {
	cards CardCatalog
}

func NewAdvisorService(cards CardCatalog) *AdvisorService {
	return &AdvisorService{cards: cards}
}

// GenerateRecommendations filters by hard eligibility, scores survivors,
// and returns at most 5 cards in descending score order. When the filter
// eliminates everything it falls back to entry-level cards so the result
// is never empty while any entry-level card exists.
func (s *AdvisorService) GenerateRecommendations(ctx context.Context, profile domain.UserProfile) ([]domain.ScoredCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if profile.MonthlyIncome <= 0 {
		return nil, apperr.NewValidation("profile must include a positive monthly income")
	}

	eligible := s.eligibleCards(profile)
	if len(eligible) == 0 {
		logger.Debug("advisor_fallback", "monthly_income", profile.MonthlyIncome)
		return s.fallbackRecommendations(profile), nil
	}

	scored := make([]domain.ScoredCard, 0, len(eligible))
	for _, card := range eligible {
		scored = append(scored, s.scoreCard(card, profile))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}

	RecommendationRunsTotal.WithLabelValues("scored").Inc()

	return scored, nil
}

// scoreCard annotates one card with the full set of personalized metrics.
func (s *AdvisorService) scoreCard(card domain.Card, profile domain.UserProfile) domain.ScoredCard {
	reward := catalog.AnnualReward(card, profile.SpendingHabits)

	return domain.ScoredCard{
		Card:                  card,
		Score:                 calculateScore(card, profile),
		EstimatedAnnualReward: reward,
		NetValue:              reward - card.AnnualFee,
		ReasonsToChoose:       generateReasons(card, profile),
	}
}

// ByCategory returns cards of a named shopping category annotated with the
// profile's personalized reward metrics. Valid categories: cashback,
// travel, dining, fuel, premium, free.
func (s *AdvisorService) ByCategory(ctx context.Context, category string, profile domain.UserProfile) ([]domain.ScoredCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	category = strings.ToLower(category)
	matcher, ok := categoryMatchers[category]
	if !ok {
		return nil, apperr.NewValidation("category must be one of: %s", strings.Join(categoryNames, ", "))
	}

	out := make([]domain.ScoredCard, 0)
	for _, card := range s.cards.GetAll() {
		if !matcher(card) {
			continue
		}
		reward := catalog.AnnualReward(card, profile.SpendingHabits)
		out = append(out, domain.ScoredCard{
			Card:                  card,
			Score:                 calculateScore(card, profile),
			EstimatedAnnualReward: reward,
			NetValue:              reward - card.AnnualFee,
		})
	}

	return out, nil
}

var categoryNames = []string{"cashback", "travel", "dining", "fuel", "premium", "free"}

var categoryMatchers = map[string]func(domain.Card) bool{
	"cashback": func(c domain.Card) bool { return c.RewardType == domain.RewardCashback },
	"travel":   func(c domain.Card) bool { return bestForContains(c, "travel") },
	"dining":   func(c domain.Card) bool { return bestForContains(c, "dining") },
	"fuel":     func(c domain.Card) bool { return bestForContains(c, "fuel") },
	"premium": func(c domain.Card) bool {
		return c.Category == "Premium" || c.Category == "Super Premium"
	},
	"free": func(c domain.Card) bool { return c.AnnualFee == 0 },
}

func bestForContains(card domain.Card, keyword string) bool {
	for _, bf := range card.BestFor {
		if strings.Contains(strings.ToLower(bf), keyword) {
			return true
		}
	}
	return false
}

// Compare recomputes per-card metrics for 2-5 cards against one profile
// and aggregates the best performers.
func (s *AdvisorService) Compare(ctx context.Context, cardIDs []string, profile domain.UserProfile) ([]domain.ScoredCard, domain.CompareInsights, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.CompareInsights{}, fmt.Errorf("context error: %w", err)
	}
	if len(cardIDs) < 2 {
		return nil, domain.CompareInsights{}, apperr.NewValidation("please provide at least 2 card IDs to compare")
	}
	if len(cardIDs) > 5 {
		return nil, domain.CompareInsights{}, apperr.NewValidation("you can compare maximum 5 cards at once")
	}

	scored := make([]domain.ScoredCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		card, err := s.cards.GetByID(id)
		if err != nil {
			return nil, domain.CompareInsights{}, err
		}
		scored = append(scored, s.scoreCard(card, profile))
	}

	return scored, buildInsights(scored, profile), nil
}

func buildInsights(cards []domain.ScoredCard, profile domain.UserProfile) domain.CompareInsights {
	insights := domain.CompareInsights{
		BestValue:    &cards[0],
		BestRewards:  &cards[0],
		LowestFee:    &cards[0],
		HighestScore: &cards[0],
	}

	for i := range cards {
		c := &cards[i]
		if c.NetValue > insights.BestValue.NetValue {
			insights.BestValue = c
		}
		if c.EstimatedAnnualReward > insights.BestRewards.EstimatedAnnualReward {
			insights.BestRewards = c
		}
		if c.AnnualFee < insights.LowestFee.AnnualFee {
			insights.LowestFee = c
		}
		if c.Score > insights.HighestScore.Score {
			insights.HighestScore = c
		}
	}

	if insights.BestValue.NetValue > 0 {
		insights.Summary = append(insights.Summary,
			fmt.Sprintf("%s offers the best value with ₹%d net annual benefit", insights.BestValue.Name, insights.BestValue.NetValue))
	}
	if insights.LowestFee.AnnualFee == 0 {
		insights.Summary = append(insights.Summary,
			fmt.Sprintf("%s is free for life with no annual fee", insights.LowestFee.Name))
	}
	insights.Summary = append(insights.Summary,
		fmt.Sprintf("Based on your ₹%d monthly spending, %s maximizes your rewards", profile.TotalSpending(), insights.BestRewards.Name))

	return insights
}

// ExplainCard recomputes the personalized metrics for one card, used by
// the per-card explanation endpoint.
func (s *AdvisorService) ExplainCard(ctx context.Context, cardID string, profile domain.UserProfile) (domain.ScoredCard, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoredCard{}, fmt.Errorf("context error: %w", err)
	}

	card, err := s.cards.GetByID(cardID)
	if err != nil {
		return domain.ScoredCard{}, err
	}

	return s.scoreCard(card, profile), nil
}

// ValidProfile reports whether a caller-supplied profile carries enough
// signal for scoring: positive income and at least one positive spending
// amount.
func ValidProfile(profile domain.UserProfile) bool {
	return profile.MonthlyIncome > 0 && profile.HasSpending()
}
