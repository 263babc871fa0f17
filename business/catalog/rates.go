package catalog

import (
	"math"
	"regexp"
	"strconv"

	"cardadvisor/domain"
)

var (
	numericRateRe = regexp.MustCompile(`(\d+\.?\d*)`)
	pointsRateRe  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*points?\s*per\s*₹(\d+)`)
)

// NumericRate extracts the leading numeric magnitude from a reward-rate
// descriptor: "5% cashback" -> 5, "2 points per ₹150" -> 2. Descriptors
// without a number yield 0. Multi-tier descriptors are not disambiguated;
// the first number wins.
func NumericRate(rate string) float64 {
	match := numericRateRe.FindStringSubmatch(rate)
	if match == nil {
		return 0
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// pointsEarned evaluates a "<N> points per ₹<M>" descriptor against a
// spending amount. Descriptors of any other shape earn zero points.
func pointsEarned(amount int, rate string) float64 {
	match := pointsRateRe.FindStringSubmatch(rate)
	if match == nil {
		return 0
	}
	points, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	rupees, err := strconv.ParseFloat(match[2], 64)
	if err != nil || rupees == 0 {
		return 0
	}
	return math.Floor(float64(amount)/rupees) * points
}

// AnnualReward estimates the rupee reward a card yields for a spending
// pattern. Cashback cards earn amount*rate/100 per category; points cards
// earn points converted at the card's point value. Rounded to the nearest
// rupee.
func AnnualReward(card domain.Card, spending map[string]int) int {
	total := 0.0

	for category, amount := range spending {
		if amount <= 0 {
			continue
		}
		rate := card.RateFor(category)

		if card.RewardType == domain.RewardCashback {
			total += float64(amount) * NumericRate(rate) / 100
		} else {
			total += pointsEarned(amount, rate) * card.PointValue
		}
	}

	return int(math.Round(total))
}

// CategoryReward is the single-category slice of AnnualReward, used by the
// reward-calculator endpoint's breakdown.
func CategoryReward(card domain.Card, category string, amount int) float64 {
	if amount <= 0 {
		return 0
	}
	rate := card.RateFor(category)

	if card.RewardType == domain.RewardCashback {
		return float64(amount) * NumericRate(rate) / 100
	}
	return pointsEarned(amount, rate) * card.PointValue
}
