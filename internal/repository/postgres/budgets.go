package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// PostgresBudgetRepository implements the BudgetRepository interface
type PostgresBudgetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBudgetRepository creates a new PostgresBudgetRepository
func NewBudgetRepository(config *RepositoryConfig) repositories.BudgetRepository {
	return &PostgresBudgetRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert creates or replaces the budget for (user, category, month, year)
func (r *PostgresBudgetRepository) Upsert(ctx context.Context, budget *models.Budget) error {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, category, limit_amount, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, category, month, year) DO UPDATE SET
			limit_amount = EXCLUDED.limit_amount
	`, r.tables.Budgets)

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.Limit,
		budget.Month,
		budget.Year,
		budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}

	return nil
}

// ListForMonth returns a user's budgets for one month
func (r *PostgresBudgetRepository) ListForMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]models.Budget, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, category, limit_amount, month, year, created_at
		FROM %s
		WHERE user_id = $1 AND month = $2 AND year = $3
		ORDER BY category
	`, r.tables.Budgets)

	rows, err := r.pool.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.Month, &b.Year, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	return budgets, nil
}
