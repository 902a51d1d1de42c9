package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chat-orchestrator/internal/adapter/chat_http"
	"chat-orchestrator/internal/adapter/llm"
	"chat-orchestrator/internal/adapter/repository"
	"chat-orchestrator/internal/adapter/search"
	"chat-orchestrator/internal/domain"
	"chat-orchestrator/internal/infra"
	"chat-orchestrator/internal/infra/config"
	"chat-orchestrator/internal/infra/httpclient"
	"chat-orchestrator/internal/infra/logger"
	"chat-orchestrator/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)

	// 3. Initialize DB
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	dbPool, err := infra.NewPostgresDB(context.Background(), dsn)
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Initialize Adapters
	searchTimeout := time.Duration(cfg.SearchTimeoutSec) * time.Second
	generateTimeout := time.Duration(cfg.GenerateTimeoutSec) * time.Second

	convRepo := repository.NewConversationRepository(dbPool)
	braveClient := search.NewBraveClient(cfg.BraveURL, cfg.BraveAPIKey, httpclient.NewPooledClient(searchTimeout), log)
	wikipediaClient := search.NewWikipediaClient(cfg.WikipediaURL, httpclient.NewPooledClient(searchTimeout), log)
	newsClient := search.NewNewsAPIClient(cfg.NewsAPIURL, cfg.NewsAPIKey, httpclient.NewPooledClient(searchTimeout), log)
	cohereClient := llm.NewCohereClient(cfg.CohereURL, cfg.CohereAPIKey, cfg.CohereModel, httpclient.NewPooledClient(generateTimeout))
	captionClient := llm.NewCaptionClient(cfg.CaptionURL, "", httpclient.NewPooledClient(generateTimeout))

	// providers in fallback priority order; a missing Gemini key just shrinks
	// the chain
	var providers []domain.Generator
	geminiClient, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("gemini provider disabled", "error", err)
	} else {
		providers = append(providers, geminiClient)
	}
	providers = append(providers, cohereClient)

	// 5. Initialize Usecases
	chain := usecase.NewProviderChain(providers, generateTimeout, cfg.ProviderRatePerMin, log)
	classifier := usecase.NewRegexIntentClassifier()
	rewriter := usecase.NewQueryRewriter(chain, log)
	aggregator := usecase.NewSearchAggregator([]domain.SearchConnector{braveClient, wikipediaClient}, log)
	historySvc := usecase.NewHistoryService(convRepo, cfg.HistoryWindow, log)
	prompts := usecase.NewPromptBuilder()

	chatUsecase := usecase.NewChatUsecase(
		classifier,
		rewriter,
		aggregator,
		newsClient,
		historySvc,
		prompts,
		chain,
		log,
	)

	// 6. Initialize Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// 7. Initialize Handlers
	handler := chat_http.NewHandler(chatUsecase, captionClient, log)
	e.POST("/chat", handler.Chat)
	e.POST("/upload-image", handler.UploadImage)

	// 8. Health Checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := dbPool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 9. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
