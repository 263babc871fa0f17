package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

type stubAdvisor struct{}

func (stubAdvisor) GenerateRecommendations(_ context.Context, profile domain.UserProfile) ([]domain.ScoredCard, error) {
	if profile.MonthlyIncome <= 0 {
		return nil, apperr.NewValidation("profile must include a positive monthly income")
	}
	return []domain.ScoredCard{{
		Card:  domain.Card{ID: "starter", Name: "Starter Card"},
		Score: 75.5,
	}}, nil
}

func (stubAdvisor) ByCategory(_ context.Context, category string, _ domain.UserProfile) ([]domain.ScoredCard, error) {
	if category != "cashback" {
		return nil, apperr.NewValidation("category must be one of: cashback")
	}
	return []domain.ScoredCard{{Card: domain.Card{ID: "starter"}}}, nil
}

func (stubAdvisor) Compare(_ context.Context, cardIDs []string, _ domain.UserProfile) ([]domain.ScoredCard, domain.CompareInsights, error) {
	out := make([]domain.ScoredCard, 0, len(cardIDs))
	for _, id := range cardIDs {
		out = append(out, domain.ScoredCard{Card: domain.Card{ID: id}})
	}
	return out, domain.CompareInsights{Summary: []string{"summary"}}, nil
}

func (stubAdvisor) ExplainCard(_ context.Context, cardID string, _ domain.UserProfile) (domain.ScoredCard, error) {
	if cardID != "starter" {
		return domain.ScoredCard{}, apperr.NewNotFound("credit card with ID '%s' does not exist", cardID)
	}
	return domain.ScoredCard{Card: domain.Card{ID: "starter", Name: "Starter Card"}, Score: 75.5}, nil
}

type stubSessions struct {
	sessions map[string]domain.Session
}

func (s stubSessions) GetSession(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, apperr.NewNotFound("session '%s' not found", id)
	}
	return sess, nil
}

type stubPhraser struct{}

func (stubPhraser) GenerateRecommendationExplanation(_ context.Context, cards []domain.ScoredCard, _ domain.UserProfile) (string, error) {
	if len(cards) == 0 {
		return "no cards matched", nil
	}
	return "top pick is " + cards[0].Name, nil
}

func newRecommendationHandler(sessions map[string]domain.Session) *RecommendationHandler {
	return NewRecommendationHandler(stubAdvisor{}, stubSessions{sessions: sessions}, stubPhraser{})
}

func TestGenerateRecommendationsHandler(t *testing.T) {
	h := newRecommendationHandler(nil)

	t.Run("profile without income rejected", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodPost, "/api/recommendations", `{"spendingHabits":{"dining":5000}}`)
		require.NoError(t, h.Generate(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("profile without spending rejected", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodPost, "/api/recommendations", `{"monthlyIncome":50000}`)
		require.NoError(t, h.Generate(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("recommendations with explanation", func(t *testing.T) {
		body := `{"monthlyIncome":50000,"spendingHabits":{"dining":5000}}`
		c, rec := newCardRequest(t, http.MethodPost, "/api/recommendations", body)
		require.NoError(t, h.Generate(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "top pick is Starter Card")
		assert.Contains(t, rec.Body.String(), `"id":"starter"`)
	})
}

func TestGetForSessionHandler(t *testing.T) {
	complete := domain.NewUserProfile()
	complete.MonthlyIncome = 50000

	sessions := map[string]domain.Session{
		"done": {
			ID:      "done",
			Profile: complete,
			Recommendations: []domain.ScoredCard{{
				Card: domain.Card{ID: "starter", Name: "Starter Card"},
			}},
		},
		"fresh": {ID: "fresh", Profile: domain.NewUserProfile()},
	}
	h := newRecommendationHandler(sessions)

	t.Run("unknown session", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodGet, "/api/recommendations/ghost", "")
		c.SetParamNames("sessionId")
		c.SetParamValues("ghost")
		require.NoError(t, h.GetForSession(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("incomplete profile", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodGet, "/api/recommendations/fresh", "")
		c.SetParamNames("sessionId")
		c.SetParamValues("fresh")
		require.NoError(t, h.GetForSession(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stored recommendations served", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodGet, "/api/recommendations/done", "")
		c.SetParamNames("sessionId")
		c.SetParamValues("done")
		require.NoError(t, h.GetForSession(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "top pick is Starter Card")
	})
}

func TestCompareHandler(t *testing.T) {
	h := newRecommendationHandler(nil)

	t.Run("bounds enforced by validator", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodPost, "/api/recommendations/compare", `{"cardIds":["one"]}`)
		require.NoError(t, h.Compare(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("compares against empty profile when no session", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodPost, "/api/recommendations/compare", `{"cardIds":["one","two"]}`)
		require.NoError(t, h.Compare(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"one"`)
		assert.Contains(t, rec.Body.String(), "summary")
	})
}

func TestExplainHandler(t *testing.T) {
	h := newRecommendationHandler(nil)

	t.Run("unknown card", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodGet, "/api/recommendations/explain/ghost", "")
		c.SetParamNames("cardId")
		c.SetParamValues("ghost")
		require.NoError(t, h.Explain(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("metrics and explanation", func(t *testing.T) {
		c, rec := newCardRequest(t, http.MethodGet, "/api/recommendations/explain/starter", "")
		c.SetParamNames("cardId")
		c.SetParamValues("starter")
		require.NoError(t, h.Explain(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "top pick is Starter Card")
		assert.Contains(t, rec.Body.String(), "75.5")
	})
}
