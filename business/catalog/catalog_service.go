package catalog

import (
	"sort"
	"strings"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
)

// CardSource loads the raw catalog once at startup.
type CardSource interface {
	LoadCards() ([]domain.Card, error)
}

// FilterCriteria are independently-optional constraints for Filter.
// MinIncome and CreditScore describe the USER, so a card passes when its
// eligibility thresholds sit at or below them.
type FilterCriteria struct {
	MinIncome    int
	CreditScore  int
	Category     []string
	MaxAnnualFee *int
	RewardType   domain.RewardType
	Issuer       string
}

// CatalogService serves the immutable card catalog. A load failure
// degrades to an empty catalog; every query then simply misses.
type CatalogService struct {
	cards []domain.Card
}

func NewCatalogService(source CardSource) *CatalogService {
	cards, err := source.LoadCards()
	if err != nil {
		logger.Error("Failed to load card catalog, continuing with empty catalog", err)
		cards = nil
	}

	return &CatalogService{cards: cards}
}

func (s *CatalogService) GetAll() []domain.Card {
	return s.cards
}

func (s *CatalogService) Size() int {
	return len(s.cards)
}

func (s *CatalogService) GetByID(id string) (domain.Card, error) {
	for _, card := range s.cards {
		if card.ID == id {
			return card, nil
		}
	}
	return domain.Card{}, apperr.NewNotFound("credit card with ID '%s' does not exist", id)
}

func (s *CatalogService) Filter(criteria FilterCriteria) []domain.Card {
	out := make([]domain.Card, 0, len(s.cards))

	for _, card := range s.cards {
		if criteria.MinIncome > 0 && card.Eligibility.MinIncome > criteria.MinIncome {
			continue
		}
		if criteria.CreditScore > 0 && card.Eligibility.MinCreditScore > criteria.CreditScore {
			continue
		}
		if len(criteria.Category) > 0 && !containsString(criteria.Category, card.Category) {
			continue
		}
		if criteria.MaxAnnualFee != nil && card.AnnualFee > *criteria.MaxAnnualFee {
			continue
		}
		if criteria.RewardType != "" && card.RewardType != criteria.RewardType {
			continue
		}
		if criteria.Issuer != "" && !strings.EqualFold(card.Issuer, criteria.Issuer) {
			continue
		}

		out = append(out, card)
	}

	return out
}

// Search matches a case-insensitive substring against name, issuer, or any
// bestFor entry. Queries shorter than 2 characters are rejected.
func (s *CatalogService) Search(query string) ([]domain.Card, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, apperr.NewValidation("search query must be at least 2 characters long")
	}

	term := strings.ToLower(query)
	out := make([]domain.Card, 0)

	for _, card := range s.cards {
		if strings.Contains(strings.ToLower(card.Name), term) ||
			strings.Contains(strings.ToLower(card.Issuer), term) ||
			matchesBestFor(card, term) {
			out = append(out, card)
		}
	}

	return out, nil
}

// GetBySpendingCategory returns cards carrying an explicit rate for the
// category (no default fallback), sorted descending by numeric rate.
func (s *CatalogService) GetBySpendingCategory(category string) []domain.Card {
	out := make([]domain.Card, 0)

	for _, card := range s.cards {
		if _, ok := card.RewardRate[category]; ok {
			out = append(out, card)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return NumericRate(out[i].RewardRate[category]) > NumericRate(out[j].RewardRate[category])
	})

	return out
}

// Comparison is the structural, profile-free side-by-side view of a card
// set: fee spread, best category rates, and eligibility ranges.
type Comparison struct {
	Cards       []domain.Card      `json:"cards"`
	Fees        FeeComparison      `json:"fees"`
	BestRates   map[string]float64 `json:"bestRates"`
	Eligibility RangeComparison    `json:"eligibility"`
}

type FeeComparison struct {
	Lowest    int `json:"lowest"`
	Highest   int `json:"highest"`
	FreeCards int `json:"freeCards"`
}

type RangeComparison struct {
	MinIncomeLow  int `json:"minIncomeLow"`
	MinIncomeHigh int `json:"minIncomeHigh"`
	MinScoreLow   int `json:"minScoreLow"`
	MinScoreHigh  int `json:"minScoreHigh"`
}

// Compare builds the structural comparison for 2-5 card ids. Unknown ids
// fail the whole call.
func (s *CatalogService) Compare(cardIDs []string) (Comparison, error) {
	if len(cardIDs) < 2 {
		return Comparison{}, apperr.NewValidation("please provide at least 2 card IDs to compare")
	}
	if len(cardIDs) > 5 {
		return Comparison{}, apperr.NewValidation("you can compare maximum 5 cards at once")
	}

	cards := make([]domain.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		card, err := s.GetByID(id)
		if err != nil {
			return Comparison{}, err
		}
		cards = append(cards, card)
	}

	cmp := Comparison{
		Cards: cards,
		Fees: FeeComparison{
			Lowest:  cards[0].AnnualFee,
			Highest: cards[0].AnnualFee,
		},
		BestRates: make(map[string]float64),
		Eligibility: RangeComparison{
			MinIncomeLow:  cards[0].Eligibility.MinIncome,
			MinIncomeHigh: cards[0].Eligibility.MinIncome,
			MinScoreLow:   cards[0].Eligibility.MinCreditScore,
			MinScoreHigh:  cards[0].Eligibility.MinCreditScore,
		},
	}

	for _, card := range cards {
		if card.AnnualFee < cmp.Fees.Lowest {
			cmp.Fees.Lowest = card.AnnualFee
		}
		if card.AnnualFee > cmp.Fees.Highest {
			cmp.Fees.Highest = card.AnnualFee
		}
		if card.AnnualFee == 0 {
			cmp.Fees.FreeCards++
		}

		for _, category := range []string{"dining", "travel", "fuel"} {
			if rate := NumericRate(card.RateFor(category)); rate > cmp.BestRates[category] {
				cmp.BestRates[category] = rate
			}
		}

		if card.Eligibility.MinIncome < cmp.Eligibility.MinIncomeLow {
			cmp.Eligibility.MinIncomeLow = card.Eligibility.MinIncome
		}
		if card.Eligibility.MinIncome > cmp.Eligibility.MinIncomeHigh {
			cmp.Eligibility.MinIncomeHigh = card.Eligibility.MinIncome
		}
		if card.Eligibility.MinCreditScore < cmp.Eligibility.MinScoreLow {
			cmp.Eligibility.MinScoreLow = card.Eligibility.MinCreditScore
		}
		if card.Eligibility.MinCreditScore > cmp.Eligibility.MinScoreHigh {
			cmp.Eligibility.MinScoreHigh = card.Eligibility.MinCreditScore
		}
	}

	return cmp, nil
}

func matchesBestFor(card domain.Card, term string) bool {
	for _, bf := range card.BestFor {
		if strings.Contains(strings.ToLower(bf), term) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
