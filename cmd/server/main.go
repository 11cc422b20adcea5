package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/thallesrafaell/jurandir-finance/internal/agent"
	"github.com/thallesrafaell/jurandir-finance/internal/agent/tools"
	"github.com/thallesrafaell/jurandir-finance/internal/catalog"
	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/httputil"
	"github.com/thallesrafaell/jurandir-finance/internal/llm"
	"github.com/thallesrafaell/jurandir-finance/internal/middleware"
	"github.com/thallesrafaell/jurandir-finance/internal/repository/postgres"
	"github.com/thallesrafaell/jurandir-finance/internal/service/report"
	"github.com/thallesrafaell/jurandir-finance/internal/transport/whatsapp"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		logFile, err := config.SetupLogFile(dir, 5)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"agent_name", cfg.AgentName,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	expenseRepo := postgres.NewExpenseRepository(repoConfig)
	incomeRepo := postgres.NewIncomeRepository(repoConfig)
	budgetRepo := postgres.NewBudgetRepository(repoConfig)
	investmentRepo := postgres.NewInvestmentRepository(repoConfig)

	// Load the category catalog
	cat, err := catalog.New()
	if err != nil {
		log.Fatalf("Failed to load category catalog: %v", err)
	}

	// Create the financial services and tool handlers
	reportService := report.NewService(expenseRepo, incomeRepo, groupRepo, cat, logger)
	resolver := tools.NewMemberResolver(userRepo, groupRepo, logger)
	executor := tools.NewExecutor(
		expenseRepo,
		incomeRepo,
		budgetRepo,
		investmentRepo,
		groupRepo,
		reportService,
		resolver,
		cat,
		logger,
	)
	registry := tools.NewRegistry(logger)
	executor.RegisterAll(registry)
	defs := tools.NewDefinitions(cat)

	// Setup the Gemini provider (GEMINI_API_KEY is read here)
	provider, err := llm.NewGeminiProvider(ctx, os.Getenv("GEMINI_API_KEY"), cfg.GeminiModel, logger)
	if err != nil {
		log.Fatalf("Failed to create Gemini provider: %v", err)
	}

	history := agent.NewConversationStore(config.MaxTrackedConversations, config.MaxHistoryTurns)
	assistant := agent.New(provider, registry, defs, history, cfg.AgentName, logger)

	// WhatsApp transport
	waClient := whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID, logger)
	webhook := whatsapp.NewHandler(
		assistant,
		userRepo,
		groupRepo,
		waClient,
		cfg.WhatsAppVerifyToken,
		cfg.WhatsAppAppSecret,
		cfg.AgentName,
		logger,
	)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Webhook routes
	mux.HandleFunc("GET /webhook", webhook.Verify)
	mux.HandleFunc("POST /webhook", webhook.Receive)

	// Build middleware chain
	var handler http.Handler = mux
	handler = middleware.Recovery(logger)(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	handler = corsHandler.Handler(handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
