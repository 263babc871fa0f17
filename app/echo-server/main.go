package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardadvisor/app/echo-server/router"
	"cardadvisor/business/advisor"
	"cardadvisor/business/catalog"
	"cardadvisor/business/chat"
	"cardadvisor/internal/middleware"
	"cardadvisor/internal/repository/jsonfile"
	"cardadvisor/internal/repository/phrasing"
	psqlRepo "cardadvisor/internal/repository/postgres"
	"cardadvisor/internal/rest"
	"cardadvisor/internal/session"
	"cardadvisor/pkg/config"
	"cardadvisor/pkg/database"
	redisdb "cardadvisor/pkg/database/redis"
	"cardadvisor/pkg/logger"
	"cardadvisor/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Credit Card Advisor", "version", cfg.App.Version)

	metrics.Init()

	// Catalog source
	var cardSource catalog.CardSource
	switch cfg.Catalog.Source {
	case "postgres":
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		repo := psqlRepo.NewCardRepository(db)
		if err := repo.Migrate(); err != nil {
			logger.Fatal("Failed to migrate cards table", "error", err)
		}
		cardSource = repo
	default:
		cardSource = jsonfile.NewCardRepository(cfg.Catalog.DataPath)
	}

	catalogService := catalog.NewCatalogService(cardSource)
	logger.Info("Card catalog loaded", "cards", catalogService.Size(), "source", cfg.Catalog.Source)

	// Session store
	var store session.Store
	switch cfg.Session.Backend {
	case "redis":
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		store = session.NewRedisStore(client, cfg.Session.TTL)
	default:
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		memStore.StartSweeper(cfg.Session.SweepInterval)
		store = memStore
	}
	defer store.Close()

	// Phrasing chain
	var providers []phrasing.Provider
	for _, name := range cfg.Phrasing.Providers {
		switch name {
		case "gemini":
			providers = append(providers, phrasing.NewGeminiProvider(phrasing.GeminiConfig{
				APIKey: cfg.Phrasing.GeminiAPIKey,
				Model:  cfg.Phrasing.GeminiModel,
			}))
		case "ollama":
			providers = append(providers, phrasing.NewOllamaProvider(phrasing.OllamaConfig{
				BaseURL: cfg.Phrasing.OllamaURL,
				Model:   cfg.Phrasing.OllamaModel,
			}))
		case "static":
			providers = append(providers, phrasing.NewStaticProvider())
		default:
			logger.Warn("Unknown phrasing provider, skipping", "provider", name)
		}
	}
	phrasingChain := phrasing.NewChain(cfg.Phrasing.Timeout, providers...)

	// Init service
	advisorService := advisor.NewAdvisorService(catalogService)
	chatService := chat.NewChatService(store, phrasingChain, advisorService)

	// Init handler
	chatHandler := rest.NewChatHandler(chatService)
	cardHandler := rest.NewCardHandler(catalogService)
	recommendationHandler := rest.NewRecommendationHandler(advisorService, chatService, phrasingChain)
	healthHandler := rest.NewHealthHandler(catalogService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	router.SetupHealthRoutes(e, healthHandler)

	// Setup routes
	api := e.Group("/api")
	router.SetupChatRoutes(api, chatHandler)
	router.SetupCardRoutes(api, cardHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
