package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CreditScoreUnknown is the sentinel stored when the user does not know
// their score. A profile with an unknown score still counts as complete.
const CreditScoreUnknown = "unknown"

// SpendingCategories are the fixed keys of SpendingHabits, in the order the
// conversation walks them. DefaultRateKey catches uncategorised amounts.
var SpendingCategories = []string{"dining", "travel", "fuel", "groceries", "online", DefaultRateKey}

// CreditScore is either a numeric score in [300,900] or the "unknown"
// sentinel. The zero value means "not provided yet".
type CreditScore struct {
	Value   int  `json:"value,omitempty"`
	Unknown bool `json:"unknown,omitempty"`
}

func (s CreditScore) IsSet() bool {
	return s.Unknown || s.Value > 0
}

// Numeric reports the score and whether it is usable for eligibility
// checks. An unknown score skips the check entirely.
func (s CreditScore) Numeric() (int, bool) {
	if s.Unknown || s.Value <= 0 {
		return 0, false
	}
	return s.Value, true
}

// MarshalJSON keeps the wire shape callers expect: a bare number, the
// string "unknown", or null when unset.
func (s CreditScore) MarshalJSON() ([]byte, error) {
	switch {
	case s.Unknown:
		return []byte(`"unknown"`), nil
	case s.Value > 0:
		return []byte(strconv.Itoa(s.Value)), nil
	default:
		return []byte("null"), nil
	}
}

func (s *CreditScore) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "null" || str == "" {
		*s = CreditScore{}
		return nil
	}
	if strings.EqualFold(str, CreditScoreUnknown) {
		*s = CreditScore{Unknown: true}
		return nil
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("invalid credit score %q", str)
	}
	*s = CreditScore{Value: v}
	return nil
}

func (s CreditScore) String() string {
	if s.Unknown {
		return CreditScoreUnknown
	}
	if s.Value <= 0 {
		return ""
	}
	return strconv.Itoa(s.Value)
}

type Preferences struct {
	RewardType    RewardType `json:"rewardType,omitempty"`
	Benefits      []string   `json:"benefits,omitempty"`
	MaxAnnualFee  *int       `json:"maxAnnualFee,omitempty"`
	ExistingCards []string   `json:"existingCards,omitempty"`
}

// UserProfile is the structured result of the conversation. One per
// session, mutated only through the session store's merge operations.
type UserProfile struct {
	MonthlyIncome  int            `json:"monthlyIncome,omitempty"`
	CreditScore    CreditScore    `json:"creditScore,omitempty"`
	SpendingHabits map[string]int `json:"spendingHabits"`
	Preferences    Preferences    `json:"preferences"`
}

// NewUserProfile returns a profile with all spending categories zeroed.
func NewUserProfile() UserProfile {
	habits := make(map[string]int, len(SpendingCategories))
	for _, cat := range SpendingCategories {
		habits[cat] = 0
	}
	return UserProfile{SpendingHabits: habits}
}

// TotalSpending sums all category amounts.
func (p UserProfile) TotalSpending() int {
	total := 0
	for _, amount := range p.SpendingHabits {
		total += amount
	}
	return total
}

// HasSpending reports whether at least one category amount is positive.
func (p UserProfile) HasSpending() bool {
	for _, amount := range p.SpendingHabits {
		if amount > 0 {
			return true
		}
	}
	return false
}

// IsComplete is the four-predicate gate for generating recommendations:
// positive income, credit score set (numeric or unknown), at least one
// positive spending amount, and a stated reward-type preference.
func (p UserProfile) IsComplete() bool {
	return p.MonthlyIncome > 0 &&
		p.CreditScore.IsSet() &&
		p.HasSpending() &&
		p.Preferences.RewardType != ""
}
