package domain

import "strings"

// RewardType is how a card pays back: flat cashback or reward points.
type RewardType string

const (
	RewardCashback RewardType = "Cashback"
	RewardPoints   RewardType = "Points"
)

// DefaultRateKey is the rewardRate entry every card must carry as a
// fallback for unlisted spending categories.
const DefaultRateKey = "default"

type Eligibility struct {
	MinIncome      int `json:"minIncome"` // annual, rupees
	MinCreditScore int `json:"minCreditScore"`
}

// Card is one immutable catalog record. Loaded once at startup and never
// mutated afterwards.
type Card struct {
	ID           string            `json:"id" gorm:"primaryKey;column:id"`
	Name         string            `json:"name" gorm:"column:name"`
	Issuer       string            `json:"issuer" gorm:"column:issuer"`
	AnnualFee    int               `json:"annualFee" gorm:"column:annual_fee"`
	RewardType   RewardType        `json:"rewardType" gorm:"column:reward_type"`
	RewardRate   map[string]string `json:"rewardRate" gorm:"serializer:json;column:reward_rate"`
	PointValue   float64           `json:"pointValue" gorm:"column:point_value"` // rupees per point, Points cards only
	Eligibility  Eligibility       `json:"eligibility" gorm:"embedded"`
	SpecialPerks []string          `json:"specialPerks" gorm:"serializer:json;column:special_perks"`
	Category     string            `json:"category" gorm:"column:category"`
	BestFor      []string          `json:"bestFor" gorm:"serializer:json;column:best_for"`
	FeeWaiver    string            `json:"feeWaiver,omitempty" gorm:"column:fee_waiver"`
	ApplyLink    string            `json:"applyLink" gorm:"column:apply_link"`
}

func (Card) TableName() string {
	return "credit_cards"
}

// RateFor resolves the reward-rate descriptor for a spending category,
// falling back to the card's default entry.
func (c Card) RateFor(category string) string {
	if rate, ok := c.RewardRate[category]; ok {
		return rate
	}
	return c.RewardRate[DefaultRateKey]
}

// HasPerk reports whether any perk text contains the keyword,
// case-insensitively. Matching is substring-based, same as the scoring
// engine's benefit matching.
func (c Card) HasPerk(keyword string) bool {
	for _, perk := range c.SpecialPerks {
		if containsFold(perk, keyword) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
