// MCP server for the financial record store (stdio transport).
//
// Exposes the same expense, investment and budget operations the chat
// assistant uses, so any MCP-capable AI tool can work with the data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/mcptools"
	"github.com/thallesrafaell/jurandir-finance/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()

	// Logs go to stderr so they don't interfere with the stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}

	toolset := mcptools.NewToolset(
		postgres.NewExpenseRepository(repoConfig),
		postgres.NewInvestmentRepository(repoConfig),
		postgres.NewBudgetRepository(repoConfig),
	)

	s := server.NewMCPServer(
		"jurandir-finance",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	toolset.Register(s)

	logger.Info("mcp server starting on stdio", "table_prefix", cfg.TablePrefix)
	return server.ServeStdio(s)
}
