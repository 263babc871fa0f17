package rest

import (
	"github.com/labstack/echo/v4"

	"cardadvisor/pkg/apperr"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func respondError(c echo.Context, err error) error {
	return c.JSON(apperr.StatusOf(err), ResponseError{Message: err.Error()})
}
