package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/thallesrafaell/jurandir-finance/internal/config"
	"github.com/thallesrafaell/jurandir-finance/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating the schema (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	log.Printf("🏗️  Setting up schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")
}

// runSchema creates the database schema if it doesn't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create users table
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			phone TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	// Create groups table (id is the chat identity, not generated)
	createGroups := `
		CREATE TABLE IF NOT EXISTS ` + tables.Groups + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createGroups); err != nil {
		return err
	}

	// Create group members table
	createGroupMembers := `
		CREATE TABLE IF NOT EXISTS ` + tables.GroupMembers + ` (
			group_id TEXT NOT NULL REFERENCES ` + tables.Groups + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			role TEXT NOT NULL DEFAULT 'member',
			joined_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (group_id, user_id)
		)
	`
	if _, err := pool.Exec(ctx, createGroupMembers); err != nil {
		return err
	}

	// Create expenses table
	createExpenses := `
		CREATE TABLE IF NOT EXISTS ` + tables.Expenses + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			group_id TEXT REFERENCES ` + tables.Groups + `(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			category TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createExpenses); err != nil {
		return err
	}

	// Create incomes table
	createIncomes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Incomes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			group_id TEXT REFERENCES ` + tables.Groups + `(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			source TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createIncomes); err != nil {
		return err
	}

	// Create budgets table
	createBudgets := `
		CREATE TABLE IF NOT EXISTS ` + tables.Budgets + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			limit_amount NUMERIC(12,2) NOT NULL,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (user_id, category, month, year)
		)
	`
	if _, err := pool.Exec(ctx, createBudgets); err != nil {
		return err
	}

	// Create investments table
	createInvestments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Investments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			current_value NUMERIC(12,2) NOT NULL,
			purchase_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createInvestments); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `expenses_user_date ON ` + tables.Expenses + `(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `expenses_group_date ON ` + tables.Expenses + `(group_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `incomes_user_date ON ` + tables.Incomes + `(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `incomes_group_date ON ` + tables.Incomes + `(group_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `budgets_user_period ON ` + tables.Budgets + `(user_id, month, year)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `investments_user ON ` + tables.Investments + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `group_members_user ON ` + tables.GroupMembers + `(user_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops every table in dependency order
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Investments,
		tables.Budgets,
		tables.Incomes,
		tables.Expenses,
		tables.GroupMembers,
		tables.Groups,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
