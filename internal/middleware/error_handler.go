package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
)

type errorBody struct {
	Message string `json:"message"`
}

// ErrorHandler translates errors that escape a handler into the JSON error
// shape the handlers themselves use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperr.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("unhandled request error", err)
	}

	if writeErr := c.JSON(status, errorBody{Message: message}); writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}
