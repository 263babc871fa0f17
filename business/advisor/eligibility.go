package advisor

import (
	"cardadvisor/business/catalog"
	"cardadvisor/domain"
)

const (
	entryLevelMaxIncome = 300000
	entryLevelMaxScore  = 650
	fallbackScore       = 0.6
	maxFallbackCards    = 3
)

// eligibleCards applies the hard constraints: annualized income threshold,
// numeric credit score (unknown skips the check), fee ceiling, and exact
// reward-type preference.
func (s *AdvisorService) eligibleCards(profile domain.UserProfile) []domain.Card {
	annualIncome := profile.MonthlyIncome * 12

	out := make([]domain.Card, 0)
	for _, card := range s.cards.GetAll() {
		if card.Eligibility.MinIncome > annualIncome {
			continue
		}
		if score, ok := profile.CreditScore.Numeric(); ok && score < card.Eligibility.MinCreditScore {
			continue
		}
		if fee := profile.Preferences.MaxAnnualFee; fee != nil && card.AnnualFee > *fee {
			continue
		}
		if rt := profile.Preferences.RewardType; rt != "" && card.RewardType != rt {
			continue
		}
		out = append(out, card)
	}

	return out
}

var fallbackReasons = []string{
	"Good entry-level option",
	"Easy approval process",
	"Build credit history",
}

// fallbackRecommendations returns up to 3 entry-level cards with a fixed
// score, so the engine never comes back empty when such cards exist.
func (s *AdvisorService) fallbackRecommendations(profile domain.UserProfile) []domain.ScoredCard {
	out := make([]domain.ScoredCard, 0, maxFallbackCards)

	for _, card := range s.cards.GetAll() {
		if card.Eligibility.MinIncome > entryLevelMaxIncome ||
			card.Eligibility.MinCreditScore > entryLevelMaxScore {
			continue
		}

		reward := catalog.AnnualReward(card, profile.SpendingHabits)
		out = append(out, domain.ScoredCard{
			Card:                  card,
			Score:                 fallbackScore,
			EstimatedAnnualReward: reward,
			NetValue:              reward - card.AnnualFee,
			ReasonsToChoose:       fallbackReasons,
		})
		if len(out) == maxFallbackCards {
			break
		}
	}

	RecommendationRunsTotal.WithLabelValues("fallback").Inc()

	return out
}
