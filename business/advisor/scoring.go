package advisor

import (
	"math"
	"strings"

	"cardadvisor/business/catalog"
	"cardadvisor/domain"
)

// Factor weights of the final score. Each factor lands in [0,1]; the
// weighted sum is scaled to 0-100 and rounded to 2 decimals.
const (
	weightReward     = 0.40
	weightPreference = 0.25
	weightValue      = 0.20
	weightFeature    = 0.15

	// assumed ceiling for a rupee-normalized reward rate
	maxNormalizedRate = 6.0
)

var majorIssuers = map[string]bool{
	"HDFC Bank":           true,
	"ICICI Bank":          true,
	"Axis Bank":           true,
	"SBI":                 true,
	"Kotak Mahindra Bank": true,
}

func calculateScore(card domain.Card, profile domain.UserProfile) float64 {
	score := rewardAlignment(card, profile.SpendingHabits)*weightReward +
		preferenceMatch(card, profile.Preferences)*weightPreference +
		valueScore(card, profile.SpendingHabits)*weightValue +
		featureScore(card)*weightFeature

	return math.Round(score*100*100) / 100
}

// rewardAlignment weights each spent category by its share of total
// spending and accumulates the card's rupee-normalized rate for it.
// Points rates are multiplied by the card's point value so both reward
// types compare on a rupee basis.
func rewardAlignment(card domain.Card, spending map[string]int) float64 {
	total := 0
	for _, amount := range spending {
		total += amount
	}
	if total == 0 {
		return 0.5
	}

	weighted := 0.0
	for category, amount := range spending {
		if amount <= 0 {
			continue
		}
		share := float64(amount) / float64(total)
		rate := catalog.NumericRate(card.RateFor(category))
		if card.RewardType == domain.RewardPoints {
			rate *= card.PointValue
		}
		weighted += share * rate
	}

	return math.Min(weighted/maxNormalizedRate, 1)
}

// preferenceMatch scores the stated reward-type (worth 0.4) and benefit
// keywords (worth 0.6, scaled by the matched fraction), normalized over
// the axes the user actually specified. Nothing specified scores 0.5.
func preferenceMatch(card domain.Card, prefs domain.Preferences) float64 {
	score := 0.0
	maxScore := 0.0

	if prefs.RewardType != "" {
		maxScore += 0.4
		if card.RewardType == prefs.RewardType {
			score += 0.4
		}
	}

	if len(prefs.Benefits) > 0 {
		maxScore += 0.6
		perkText := strings.ToLower(strings.Join(card.SpecialPerks, " "))

		matches := 0
		for _, benefit := range prefs.Benefits {
			if strings.Contains(perkText, strings.ToLower(benefit)) {
				matches++
			}
		}
		score += float64(matches) / float64(len(prefs.Benefits)) * 0.6
	}

	if maxScore == 0 {
		return 0.5
	}
	return score / maxScore
}

// valueScore normalizes net value into [0,1] over an expected range of
// -5000..10000 rupees.
func valueScore(card domain.Card, spending map[string]int) float64 {
	netValue := catalog.AnnualReward(card, spending) - card.AnnualFee
	normalized := math.Max(0, float64(netValue)+5000) / 15000
	return math.Min(normalized, 1)
}

// featureScore adds fixed bonuses for premium tier, major issuer, low or
// zero fee, and a welcome bonus, capped at 1.
func featureScore(card domain.Card) float64 {
	score := 0.0

	if card.Category == "Premium" || card.Category == "Super Premium" {
		score += 0.3
	}
	if majorIssuers[card.Issuer] {
		score += 0.2
	}
	if card.AnnualFee == 0 {
		score += 0.3
	} else if card.AnnualFee <= 1000 {
		score += 0.2
	}
	if card.HasPerk("welcome") {
		score += 0.2
	}

	return math.Min(score, 1)
}
