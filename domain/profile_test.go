package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditScoreJSON(t *testing.T) {
	t.Run("numeric", func(t *testing.T) {
		data, err := json.Marshal(CreditScore{Value: 750})
		require.NoError(t, err)
		assert.Equal(t, "750", string(data))

		var s CreditScore
		require.NoError(t, json.Unmarshal([]byte("750"), &s))
		assert.Equal(t, CreditScore{Value: 750}, s)
	})

	t.Run("unknown sentinel", func(t *testing.T) {
		data, err := json.Marshal(CreditScore{Unknown: true})
		require.NoError(t, err)
		assert.Equal(t, `"unknown"`, string(data))

		var s CreditScore
		require.NoError(t, json.Unmarshal([]byte(`"unknown"`), &s))
		assert.True(t, s.Unknown)
	})

	t.Run("unset is null", func(t *testing.T) {
		data, err := json.Marshal(CreditScore{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		var s CreditScore
		require.NoError(t, json.Unmarshal([]byte("null"), &s))
		assert.False(t, s.IsSet())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var s CreditScore
		assert.Error(t, json.Unmarshal([]byte(`"excellent"`), &s))
	})
}

func TestCreditScoreNumeric(t *testing.T) {
	v, ok := CreditScore{Value: 720}.Numeric()
	assert.True(t, ok)
	assert.Equal(t, 720, v)

	_, ok = CreditScore{Unknown: true}.Numeric()
	assert.False(t, ok)

	_, ok = CreditScore{}.Numeric()
	assert.False(t, ok)
}

func TestIsComplete(t *testing.T) {
	complete := func() UserProfile {
		p := NewUserProfile()
		p.MonthlyIncome = 50000
		p.CreditScore = CreditScore{Value: 700}
		p.SpendingHabits["dining"] = 5000
		p.Preferences.RewardType = RewardCashback
		return p
	}

	assert.True(t, complete().IsComplete())

	t.Run("missing income", func(t *testing.T) {
		p := complete()
		p.MonthlyIncome = 0
		assert.False(t, p.IsComplete())
	})

	t.Run("missing credit score", func(t *testing.T) {
		p := complete()
		p.CreditScore = CreditScore{}
		assert.False(t, p.IsComplete())
	})

	t.Run("unknown score still counts", func(t *testing.T) {
		p := complete()
		p.CreditScore = CreditScore{Unknown: true}
		assert.True(t, p.IsComplete())
	})

	t.Run("no positive spending", func(t *testing.T) {
		p := complete()
		p.SpendingHabits["dining"] = 0
		assert.False(t, p.IsComplete())
	})

	t.Run("missing reward preference", func(t *testing.T) {
		p := complete()
		p.Preferences.RewardType = ""
		assert.False(t, p.IsComplete())
	})
}

func TestNextStep(t *testing.T) {
	incomplete := NewUserProfile()

	assert.Equal(t, StepIncome, NextStep(incomplete, StepGreeting))
	assert.Equal(t, StepCreditScore, NextStep(incomplete, StepIncome))
	assert.Equal(t, StepSpending, NextStep(incomplete, StepCreditScore))
	assert.Equal(t, StepPreferences, NextStep(incomplete, StepSpending))
	assert.Equal(t, StepComplete, NextStep(incomplete, StepPreferences))
	assert.Equal(t, StepComplete, NextStep(incomplete, StepComplete))

	complete := NewUserProfile()
	complete.MonthlyIncome = 50000
	complete.CreditScore = CreditScore{Unknown: true}
	complete.SpendingHabits["online"] = 8000
	complete.Preferences.RewardType = RewardPoints

	// a complete profile short-circuits from any position
	assert.Equal(t, StepComplete, NextStep(complete, StepIncome))
}

func TestCardRateForAndHasPerk(t *testing.T) {
	card := Card{
		RewardRate: map[string]string{
			"dining":  "4% cashback",
			"default": "1% cashback",
		},
		SpecialPerks: []string{"Complimentary Airport Lounge access", "Welcome voucher"},
	}

	assert.Equal(t, "4% cashback", card.RateFor("dining"))
	assert.Equal(t, "1% cashback", card.RateFor("fuel"))

	assert.True(t, card.HasPerk("lounge"))
	assert.True(t, card.HasPerk("WELCOME"))
	assert.False(t, card.HasPerk("golf"))
}
