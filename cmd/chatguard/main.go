package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyoai/chatguard/pkg/app/chat"
	"github.com/cyoai/chatguard/pkg/app/moderation"
	appRule "github.com/cyoai/chatguard/pkg/app/rule"
	"github.com/cyoai/chatguard/pkg/config"
	handlers "github.com/cyoai/chatguard/pkg/handlers/http"
	"github.com/cyoai/chatguard/pkg/infra/httpx"
	"github.com/cyoai/chatguard/pkg/infra/jwt"
	infraLogger "github.com/cyoai/chatguard/pkg/infra/logger"
	"github.com/cyoai/chatguard/pkg/infra/prometheus"
	"github.com/cyoai/chatguard/pkg/infra/providers/factory"
	"github.com/cyoai/chatguard/pkg/infra/repository"
	"github.com/cyoai/chatguard/pkg/middleware"
	"github.com/cyoai/chatguard/pkg/server"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	if cfg.Admin.Password == "" {
		logger.Fatal("ADMIN_PASSWORD must be set")
	}

	prometheus.Initialize()

	// repository
	ruleRepository := repository.NewFileRuleRepository(cfg.Moderation.RulesPath, logger)

	// Materialize the blocklist before accepting traffic; a missing file
	// becomes the defaults, anything else is fatal.
	if _, err := ruleRepository.Load(ctx); err != nil {
		logger.Fatalf("Failed to initialize blocklist store: %v", err)
	}

	// service
	gate := moderation.NewGate(ruleRepository, moderation.NewMatcher(), logger)
	ruleService := appRule.NewService(ruleRepository, logger)
	providerLocator := factory.NewProviderLocator()
	generationBreaker := httpx.NewCircuitBreaker("generation", 30*time.Second, 5)
	chatService := chat.NewService(gate, providerLocator, generationBreaker, &cfg.Generation, logger)

	jwtManager := jwt.NewJwtManager(&cfg.Admin)

	// middleware
	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, jwtManager),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		// Chat
		ChatHandler: handlers.NewChatHandler(logger, chatService),
		// Admin
		AdminLoginHandler: handlers.NewAdminLoginHandler(logger, &cfg.Admin, jwtManager),
		// Rules
		ListRulesHandler:   handlers.NewListRulesHandler(logger, ruleService),
		CreateRuleHandler:  handlers.NewCreateRuleHandler(logger, ruleService),
		DeleteRuleHandler:  handlers.NewDeleteRuleHandler(logger, ruleService),
		ReloadRulesHandler: handlers.NewReloadRulesHandler(logger, ruleService),
		ResetRulesHandler:  handlers.NewResetRulesHandler(logger, ruleService),
	}

	srv := server.NewAppServer(server.AppServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
