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

// PostgresInvestmentRepository implements the InvestmentRepository interface
type PostgresInvestmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewInvestmentRepository creates a new PostgresInvestmentRepository
func NewInvestmentRepository(config *RepositoryConfig) repositories.InvestmentRepository {
	return &PostgresInvestmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new investment
func (r *PostgresInvestmentRepository) Create(ctx context.Context, investment *models.Investment) error {
	if investment.ID == uuid.Nil {
		investment.ID = uuid.New()
	}
	if investment.CurrentValue == 0 {
		investment.CurrentValue = investment.Amount
	}
	if investment.PurchaseDate.IsZero() {
		investment.PurchaseDate = time.Now()
	}
	if investment.CreatedAt.IsZero() {
		investment.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, type, amount, current_value, purchase_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Investments)

	_, err := r.pool.Exec(ctx, query,
		investment.ID,
		investment.UserID,
		investment.Name,
		investment.Type,
		investment.Amount,
		investment.CurrentValue,
		investment.PurchaseDate,
		investment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create investment: %w", err)
	}

	return nil
}

// ListByUser returns a user's positions, newest first
func (r *PostgresInvestmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Investment, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, type, amount, current_value, purchase_date, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Investments)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Name, &inv.Type, &inv.Amount, &inv.CurrentValue, &inv.PurchaseDate, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}

	return investments, nil
}
