package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"cardadvisor/business/advisor"
	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
)

type (
	RecommendationHandler struct {
		validate       *validator.Validate
		advisorService AdvisorService
		sessions       SessionReader
		phraser        ExplanationPhraser
		timeout        time.Duration
	}

	AdvisorService interface {
		GenerateRecommendations(ctx context.Context, profile domain.UserProfile) ([]domain.ScoredCard, error)
		ByCategory(ctx context.Context, category string, profile domain.UserProfile) ([]domain.ScoredCard, error)
		Compare(ctx context.Context, cardIDs []string, profile domain.UserProfile) ([]domain.ScoredCard, domain.CompareInsights, error)
		ExplainCard(ctx context.Context, cardID string, profile domain.UserProfile) (domain.ScoredCard, error)
	}

	SessionReader interface {
		GetSession(ctx context.Context, id string) (domain.Session, error)
	}

	// ExplanationPhraser is the slice of the phrasing chain this handler
	// needs; the chain's terminal provider guarantees it never fails.
	ExplanationPhraser interface {
		GenerateRecommendationExplanation(ctx context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error)
	}

	CompareRequest struct {
		CardIDs   []string `json:"cardIds" validate:"required,min=2,max=5"`
		SessionID string   `json:"sessionId"`
	}

	CompareResponse struct {
		Cards    []domain.ScoredCard    `json:"cards"`
		Insights domain.CompareInsights `json:"insights"`
	}

	RecommendationResponse struct {
		Explanation     string              `json:"explanation"`
		Recommendations []domain.ScoredCard `json:"recommendations"`
	}

	ExplainResponse struct {
		Card        domain.ScoredCard `json:"card"`
		Explanation string            `json:"explanation"`
	}
)

func NewRecommendationHandler(advisorService AdvisorService, sessions SessionReader, phraser ExplanationPhraser) *RecommendationHandler {
	return &RecommendationHandler{
		validate:       validator.New(),
		advisorService: advisorService,
		sessions:       sessions,
		phraser:        phraser,
		// phrasing may call an LLM
		timeout: 30 * time.Second,
	}
}

// GetForSession serves the recommendations already computed for a session.
// They are generated once by the chat flow; this endpoint only reads them.
func (h *RecommendationHandler) GetForSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sess, err := h.sessions.GetSession(ctx, c.Param("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	if len(sess.Recommendations) == 0 {
		return respondError(c, apperr.NewValidation("profile is not complete yet, keep chatting to get recommendations"))
	}

	explanation, err := h.phraser.GenerateRecommendationExplanation(ctx, sess.Recommendations, sess.Profile)
	if err != nil {
		logger.Error("failed to phrase explanation", err)
		explanation = ""
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendationResponse{
		Explanation:     explanation,
		Recommendations: sess.Recommendations,
	}))
}

// Generate scores cards for a profile supplied directly in the body, outside
// any chat session.
func (h *RecommendationHandler) Generate(c echo.Context) error {
	var profile domain.UserProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if profile.SpendingHabits == nil {
		profile.SpendingHabits = map[string]int{}
	}
	if !advisor.ValidProfile(profile) {
		return respondError(c, apperr.NewValidation("please provide a profile with monthly income and at least one spending amount"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.advisorService.GenerateRecommendations(ctx, profile)
	if err != nil {
		logger.Error("failed to generate recommendations", err)
		return respondError(c, err)
	}

	explanation, err := h.phraser.GenerateRecommendationExplanation(ctx, recs, profile)
	if err != nil {
		logger.Error("failed to phrase explanation", err)
		explanation = ""
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendationResponse{
		Explanation:     explanation,
		Recommendations: recs,
	}))
}

// ByCategory lists cards for a named shopping category, scored against the
// session profile when one is given.
func (h *RecommendationHandler) ByCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.resolveProfile(ctx, c.QueryParam("sessionId"))
	if err != nil {
		return respondError(c, err)
	}

	recs, err := h.advisorService.ByCategory(ctx, c.Param("category"), profile)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Compare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.resolveProfile(ctx, req.SessionID)
	if err != nil {
		return respondError(c, err)
	}

	cards, insights, err := h.advisorService.Compare(ctx, req.CardIDs, profile)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(CompareResponse{
		Cards:    cards,
		Insights: insights,
	}))
}

func (h *RecommendationHandler) Explain(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.resolveProfile(ctx, c.QueryParam("sessionId"))
	if err != nil {
		return respondError(c, err)
	}

	scored, err := h.advisorService.ExplainCard(ctx, c.Param("cardId"), profile)
	if err != nil {
		return respondError(c, err)
	}

	explanation, err := h.phraser.GenerateRecommendationExplanation(ctx, []domain.ScoredCard{scored}, profile)
	if err != nil {
		logger.Error("failed to phrase explanation", err)
		explanation = ""
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ExplainResponse{
		Card:        scored,
		Explanation: explanation,
	}))
}

func (h *RecommendationHandler) resolveProfile(ctx context.Context, sessionID string) (domain.UserProfile, error) {
	if sessionID == "" {
		return domain.NewUserProfile(), nil
	}
	sess, err := h.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return sess.Profile, nil
}
