package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardadvisor/domain"
)

func TestIncome(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{"plain rupees", "I earn 50000 rupees", 50000, true},
		{"rs suffix", "around 45000 rs per month", 45000, true},
		{"currency symbol", "my salary is ₹60000", 60000, true},
		{"k shorthand", "I make 50k", 50000, true},
		{"thousand word", "about 75 thousand", 75000, true},
		{"lakh", "1 lakh per month", 100000, true},
		{"bare number", "85000", 85000, true},
		{"below floor", "I earn 5000 rupees", 0, false},
		{"lakh within bounds", "my business makes 20 lakh a month", 2000000, true},
		{"no number", "a decent amount", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Income(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreditScore(t *testing.T) {
	t.Run("dont know phrases", func(t *testing.T) {
		for _, text := range []string{"I don't know", "unknown to me", "not sure honestly", "no idea"} {
			score, ok := CreditScore(text)
			require.True(t, ok, text)
			assert.True(t, score.Unknown)
		}
	})

	t.Run("adjectives", func(t *testing.T) {
		tests := []struct {
			text string
			want int
		}{
			{"my score is excellent", 800},
			{"it's very good", 800},
			{"pretty good I think", 700},
			{"fair at best", 600},
			{"just average", 600},
			{"poor unfortunately", 500},
			{"it's bad", 500},
		}
		for _, tt := range tests {
			score, ok := CreditScore(tt.text)
			require.True(t, ok, tt.text)
			assert.Equal(t, tt.want, score.Value, tt.text)
			assert.False(t, score.Unknown)
		}
	})

	t.Run("numeric", func(t *testing.T) {
		score, ok := CreditScore("my cibil score is 750")
		require.True(t, ok)
		assert.Equal(t, 750, score.Value)
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := CreditScore("my score is 200")
		assert.False(t, ok)
	})

	t.Run("no signal", func(t *testing.T) {
		_, ok := CreditScore("what is a credit score")
		assert.False(t, ok)
	})
}

func TestSpending(t *testing.T) {
	t.Run("multiple categories", func(t *testing.T) {
		spending, ok := Spending("I spend on dining ₹10,000 and fuel 5000")
		require.True(t, ok)
		assert.Equal(t, 10000, spending["dining"])
		assert.Equal(t, 5000, spending["fuel"])
	})

	t.Run("single category", func(t *testing.T) {
		spending, ok := Spending("travel 15000 monthly")
		require.True(t, ok)
		assert.Equal(t, map[string]int{"travel": 15000}, spending)
	})

	t.Run("bare amount goes to default", func(t *testing.T) {
		spending, ok := Spending("around ₹20,000 a month")
		require.True(t, ok)
		assert.Equal(t, map[string]int{domain.DefaultRateKey: 20000}, spending)
	})

	t.Run("no amount", func(t *testing.T) {
		_, ok := Spending("quite a lot on dining")
		assert.False(t, ok)
	})
}

func TestPreferences(t *testing.T) {
	t.Run("cashback wins over points", func(t *testing.T) {
		prefs, ok := Preferences("cashback, maybe points too")
		require.True(t, ok)
		assert.Equal(t, domain.RewardCashback, prefs.RewardType)
	})

	t.Run("travel implies points", func(t *testing.T) {
		prefs, ok := Preferences("I travel a lot")
		require.True(t, ok)
		assert.Equal(t, domain.RewardPoints, prefs.RewardType)
		assert.Contains(t, prefs.Benefits, "travel")
	})

	t.Run("benefits accumulate", func(t *testing.T) {
		prefs, ok := Preferences("points with lounge access and dining offers")
		require.True(t, ok)
		assert.Equal(t, domain.RewardPoints, prefs.RewardType)
		assert.ElementsMatch(t, []string{"lounge", "dining"}, prefs.Benefits)
	})

	t.Run("no signal", func(t *testing.T) {
		_, ok := Preferences("whatever works")
		assert.False(t, ok)
	})
}

func TestAnnualFee(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{"free", "free cards only please", 0, true},
		{"no fee phrase", "I want no fee at all", 0, true},
		{"amount", "up to ₹1,000 is fine", 1000, true},
		{"no signal", "whatever is reasonable", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnnualFee(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
