package router

import (
	"github.com/labstack/echo/v4"

	"cardadvisor/internal/rest"
)

func SetupChatRoutes(api *echo.Group, handler *rest.ChatHandler) {
	chat := api.Group("/chat")

	chat.POST("/start", handler.StartSession)
	chat.POST("/message/:sessionId", handler.SendMessage)
	chat.GET("/session/:sessionId", handler.GetSession)
	chat.POST("/reset/:sessionId", handler.ResetSession)
	chat.GET("/stats", handler.Stats)
}

func SetupCardRoutes(api *echo.Group, handler *rest.CardHandler) {
	cards := api.Group("/cards")

	cards.GET("", handler.ListCards)
	cards.GET("/search", handler.SearchCards)
	cards.GET("/filter", handler.ListCards)
	cards.GET("/category/:category", handler.CardsBySpendingCategory)
	cards.POST("/compare", handler.CompareCards)
	cards.POST("/calculate-rewards", handler.CalculateRewards)
	cards.GET("/:cardId", handler.GetCard)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")

	reco.POST("", handler.Generate)
	reco.POST("/compare", handler.Compare)
	reco.GET("/category/:category", handler.ByCategory)
	reco.GET("/explain/:cardId", handler.Explain)
	reco.GET("/:sessionId", handler.GetForSession)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/", handler.Health)
	e.GET("/health", handler.Health)
	e.GET("/ready", handler.Ready)
}
