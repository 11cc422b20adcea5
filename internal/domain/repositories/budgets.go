package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// BudgetRepository persists monthly category limits.
type BudgetRepository interface {
	// Upsert creates or replaces the budget for the
	// (user, category, month, year) key.
	Upsert(ctx context.Context, budget *models.Budget) error

	// ListForMonth returns a user's budgets for one month.
	ListForMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]models.Budget, error)
}
