package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

type stubSource struct {
	cards []domain.Card
	err   error
}

func (s stubSource) LoadCards() ([]domain.Card, error) {
	return s.cards, s.err
}

func testCards() []domain.Card {
	return []domain.Card{
		{
			ID:          "basic-cashback",
			Name:        "Everyday Cashback Card",
			Issuer:      "SBI",
			AnnualFee:   499,
			RewardType:  domain.RewardCashback,
			RewardRate:  map[string]string{"online": "5% cashback", "default": "1% cashback"},
			Eligibility: domain.Eligibility{MinIncome: 240000, MinCreditScore: 600},
			Category:    "Entry Level",
			BestFor:     []string{"online shopping", "cashback"},
		},
		{
			ID:          "travel-points",
			Name:        "Voyager Points Card",
			Issuer:      "HDFC Bank",
			AnnualFee:   2500,
			RewardType:  domain.RewardPoints,
			PointValue:  0.5,
			RewardRate:  map[string]string{"online": "2 points per ₹100", "travel": "4 points per ₹100", "default": "1 point per ₹100"},
			Eligibility: domain.Eligibility{MinIncome: 1200000, MinCreditScore: 750},
			Category:    "Premium",
			BestFor:     []string{"travel", "points"},
		},
	}
}

func TestNewCatalogServiceLoadFailure(t *testing.T) {
	svc := NewCatalogService(stubSource{err: errors.New("disk on fire")})

	assert.Equal(t, 0, svc.Size())
	assert.Empty(t, svc.GetAll())

	_, err := svc.GetByID("basic-cashback")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetByID(t *testing.T) {
	svc := NewCatalogService(stubSource{cards: testCards()})

	card, err := svc.GetByID("travel-points")
	require.NoError(t, err)
	assert.Equal(t, "Voyager Points Card", card.Name)

	_, err = svc.GetByID("nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestSearch(t *testing.T) {
	svc := NewCatalogService(stubSource{cards: testCards()})

	t.Run("short query rejected", func(t *testing.T) {
		_, err := svc.Search(" a ")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("matches name", func(t *testing.T) {
		cards, err := svc.Search("voyager")
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "travel-points", cards[0].ID)
	})

	t.Run("matches issuer", func(t *testing.T) {
		cards, err := svc.Search("sbi")
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "basic-cashback", cards[0].ID)
	})

	t.Run("matches bestFor", func(t *testing.T) {
		cards, err := svc.Search("online shopping")
		require.NoError(t, err)
		require.Len(t, cards, 1)
	})

	t.Run("no hits", func(t *testing.T) {
		cards, err := svc.Search("platinum")
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestFilter(t *testing.T) {
	svc := NewCatalogService(stubSource{cards: testCards()})

	t.Run("income and score are user attributes", func(t *testing.T) {
		out := svc.Filter(FilterCriteria{MinIncome: 300000, CreditScore: 650})
		require.Len(t, out, 1)
		assert.Equal(t, "basic-cashback", out[0].ID)
	})

	t.Run("max annual fee", func(t *testing.T) {
		fee := 1000
		out := svc.Filter(FilterCriteria{MaxAnnualFee: &fee})
		require.Len(t, out, 1)
		assert.Equal(t, "basic-cashback", out[0].ID)
	})

	t.Run("reward type", func(t *testing.T) {
		out := svc.Filter(FilterCriteria{RewardType: domain.RewardPoints})
		require.Len(t, out, 1)
		assert.Equal(t, "travel-points", out[0].ID)
	})

	t.Run("empty criteria passes everything", func(t *testing.T) {
		assert.Len(t, svc.Filter(FilterCriteria{}), 2)
	})
}

func TestCompare(t *testing.T) {
	svc := NewCatalogService(stubSource{cards: testCards()})

	t.Run("bounds", func(t *testing.T) {
		_, err := svc.Compare([]string{"basic-cashback"})
		assert.True(t, apperr.IsValidation(err))

		_, err = svc.Compare([]string{"a", "b", "c", "d", "e", "f"})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Compare([]string{"basic-cashback", "ghost"})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("aggregates", func(t *testing.T) {
		cmp, err := svc.Compare([]string{"basic-cashback", "travel-points"})
		require.NoError(t, err)

		assert.Len(t, cmp.Cards, 2)
		assert.Equal(t, 499, cmp.Fees.Lowest)
		assert.Equal(t, 2500, cmp.Fees.Highest)
		assert.Equal(t, 0, cmp.Fees.FreeCards)
		// travel rate falls back to defaults for the cashback card
		assert.Equal(t, 4.0, cmp.BestRates["travel"])
		assert.Equal(t, 240000, cmp.Eligibility.MinIncomeLow)
		assert.Equal(t, 1200000, cmp.Eligibility.MinIncomeHigh)
		assert.Equal(t, 600, cmp.Eligibility.MinScoreLow)
		assert.Equal(t, 750, cmp.Eligibility.MinScoreHigh)
	})
}

func TestGetBySpendingCategory(t *testing.T) {
	svc := NewCatalogService(stubSource{cards: testCards()})

	t.Run("explicit rate only, best rate first", func(t *testing.T) {
		cards := svc.GetBySpendingCategory("online")
		require.Len(t, cards, 2)
		assert.Equal(t, "basic-cashback", cards[0].ID)
		assert.Equal(t, "travel-points", cards[1].ID)
	})

	t.Run("no default fallback", func(t *testing.T) {
		cards := svc.GetBySpendingCategory("travel")
		require.Len(t, cards, 1)
		assert.Equal(t, "travel-points", cards[0].ID)
	})

	t.Run("unknown category empty", func(t *testing.T) {
		assert.Empty(t, svc.GetBySpendingCategory("groceries"))
	})
}
