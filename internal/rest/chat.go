package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"cardadvisor/business/chat"
	"cardadvisor/domain"
	"cardadvisor/pkg/logger"
)

type (
	ChatHandler struct {
		validate    *validator.Validate
		chatService ChatService
		timeout     time.Duration
	}

	ChatService interface {
		StartSession(ctx context.Context) (chat.Turn, error)
		SendMessage(ctx context.Context, id, message string) (chat.Turn, error)
		GetSession(ctx context.Context, id string) (domain.Session, error)
		ResetSession(ctx context.Context, id string) (chat.Turn, error)
		Stats(ctx context.Context) (chat.Stats, error)
	}

	SendMessageRequest struct {
		Message string `json:"message" validate:"required"`
	}
)

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		validate:    validator.New(),
		chatService: svc,
		// phrasing may call an LLM, so the budget is generous
		timeout: 30 * time.Second,
	}
}

func (h *ChatHandler) StartSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	turn, err := h.chatService.StartSession(ctx)
	if err != nil {
		logger.Error("failed to start session", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(turn))
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	sessionID := c.Param("sessionId")

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	turn, err := h.chatService.SendMessage(ctx, sessionID, req.Message)
	if err != nil {
		logger.Error("failed to process message", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(turn))
}

func (h *ChatHandler) GetSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sess, err := h.chatService.GetSession(ctx, sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(sess))
}

func (h *ChatHandler) ResetSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	turn, err := h.chatService.ResetSession(ctx, sessionID)
	if err != nil {
		logger.Error("failed to reset session", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(turn))
}

func (h *ChatHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.chatService.Stats(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}
