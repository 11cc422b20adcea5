package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users        string
	Groups       string
	GroupMembers string
	Expenses     string
	Incomes      string
	Budgets      string
	Investments  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:        fmt.Sprintf("%susers", prefix),
		Groups:       fmt.Sprintf("%sgroups", prefix),
		GroupMembers: fmt.Sprintf("%sgroup_members", prefix),
		Expenses:     fmt.Sprintf("%sexpenses", prefix),
		Incomes:      fmt.Sprintf("%sincomes", prefix),
		Budgets:      fmt.Sprintf("%sbudgets", prefix),
		Investments:  fmt.Sprintf("%sinvestments", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into the SQL
// before it reaches the database, so each environment gets its own prepared
// statements and prefixing stays safe with statement caching.
//
// Port 6543 is a transaction pooler (PgBouncer) which doesn't support
// prepared statements; QueryExecModeCacheDescribe keeps the extended
// protocol (needed for proper JSONB encoding) while avoiding "prepared
// statement already exists" errors. An explicit default_query_exec_mode in
// the connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
