package rest

import (
	"net/http"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"cardadvisor/business/catalog"
	"cardadvisor/domain"
)

type (
	CardHandler struct {
		validate *validator.Validate
		catalog  CardCatalog
	}

	CardCatalog interface {
		GetAll() []domain.Card
		GetByID(id string) (domain.Card, error)
		Search(query string) ([]domain.Card, error)
		Filter(criteria catalog.FilterCriteria) []domain.Card
		GetBySpendingCategory(category string) []domain.Card
		Compare(cardIDs []string) (catalog.Comparison, error)
	}

	CompareCardsRequest struct {
		CardIDs []string `json:"cardIds" validate:"required,min=2,max=5"`
	}

	CardFilterQuery struct {
		MinIncome    string `query:"minIncome"`
		CreditScore  string `query:"creditScore"`
		Category     string `query:"category"`
		MaxAnnualFee string `query:"maxAnnualFee"`
		RewardType   string `query:"rewardType"`
		Issuer       string `query:"issuer"`
	}

	CalculateRewardsRequest struct {
		CardID         string         `json:"cardId" validate:"required"`
		SpendingHabits map[string]int `json:"spendingHabits" validate:"required,min=1"`
	}

	CalculateRewardsResponse struct {
		CardID            string                   `json:"cardId"`
		CardName          string                   `json:"cardName"`
		Breakdown         []domain.RewardBreakdown `json:"breakdown"`
		TotalAnnualReward int                      `json:"totalAnnualReward"`
		NetValue          int                      `json:"netValue"`
	}
)

func NewCardHandler(cat CardCatalog) *CardHandler {
	return &CardHandler{
		validate: validator.New(),
		catalog:  cat,
	}
}

// ListCards serves the full catalog, narrowed by any filter params present.
func (h *CardHandler) ListCards(c echo.Context) error {
	var q CardFilterQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q == (CardFilterQuery{}) {
		return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalog.GetAll()))
	}

	criteria := catalog.FilterCriteria{
		RewardType: domain.RewardType(q.RewardType),
		Issuer:     q.Issuer,
	}
	if q.MinIncome != "" {
		income, err := strconv.Atoi(q.MinIncome)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "minIncome must be a number"})
		}
		criteria.MinIncome = income
	}
	if q.CreditScore != "" {
		score, err := strconv.Atoi(q.CreditScore)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "creditScore must be a number"})
		}
		criteria.CreditScore = score
	}
	if q.MaxAnnualFee != "" {
		fee, err := strconv.Atoi(q.MaxAnnualFee)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "maxAnnualFee must be a number"})
		}
		criteria.MaxAnnualFee = &fee
	}
	if q.Category != "" {
		criteria.Category = []string{q.Category}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.catalog.Filter(criteria)))
}

func (h *CardHandler) GetCard(c echo.Context) error {
	card, err := h.catalog.GetByID(c.Param("cardId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(card))
}

func (h *CardHandler) SearchCards(c echo.Context) error {
	cards, err := h.catalog.Search(c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cards))
}

// CardsBySpendingCategory lists cards carrying an explicit reward rate for
// the category, best rate first.
func (h *CardHandler) CardsBySpendingCategory(c echo.Context) error {
	cards := h.catalog.GetBySpendingCategory(c.Param("category"))
	return c.JSON(http.StatusOK, fres.Response.StatusOK(cards))
}

// CompareCards serves the structural side-by-side view of 2-5 cards. No
// profile is involved; the personalized variant lives on the
// recommendations group.
func (h *CardHandler) CompareCards(c echo.Context) error {
	var req CompareCardsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	comparison, err := h.catalog.Compare(req.CardIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(comparison))
}

// CalculateRewards breaks down the annual reward a card would earn on the
// given monthly spending, category by category.
func (h *CardHandler) CalculateRewards(c echo.Context) error {
	var req CalculateRewardsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	card, err := h.catalog.GetByID(req.CardID)
	if err != nil {
		return respondError(c, err)
	}

	breakdown := make([]domain.RewardBreakdown, 0, len(req.SpendingHabits))
	for _, category := range domain.SpendingCategories {
		amount, ok := req.SpendingHabits[category]
		if !ok || amount <= 0 {
			continue
		}
		breakdown = append(breakdown, domain.RewardBreakdown{
			Category: category,
			Spending: amount,
			Rate:     card.RateFor(category),
			Reward:   catalog.CategoryReward(card, category, amount),
		})
	}
	total := catalog.AnnualReward(card, req.SpendingHabits)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(CalculateRewardsResponse{
		CardID:            card.ID,
		CardName:          card.Name,
		Breakdown:         breakdown,
		TotalAnnualReward: total,
		NetValue:          total - card.AnnualFee,
	}))
}
