package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type (
	HealthHandler struct {
		catalog   CatalogSizer
		startedAt time.Time
	}

	CatalogSizer interface {
		Size() int
	}
)

func NewHealthHandler(catalog CatalogSizer) *HealthHandler {
	return &HealthHandler{
		catalog:   catalog,
		startedAt: time.Now(),
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"cardsLoaded":   h.catalog.Size(),
		"uptimeSeconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// Ready fails while the catalog is empty so load balancers hold traffic
// until cards are available.
func (h *HealthHandler) Ready(c echo.Context) error {
	if h.catalog.Size() == 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "catalog empty",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}
