package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// IncomeRepository persists earning records. Lookup semantics mirror
// ExpenseRepository.
type IncomeRepository interface {
	// Create inserts a new income and fills its generated fields.
	Create(ctx context.Context, income *models.Income) error

	// ListByUser returns a user's personal incomes, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter models.IncomeFilter) ([]models.Income, error)

	// ListByGroup returns a group's incomes with User populated, newest first.
	ListByGroup(ctx context.Context, groupID string, filter models.IncomeFilter) ([]models.Income, error)

	// SummaryBySource totals a user's personal incomes per source
	// within [from, to].
	SummaryBySource(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.SourceTotal, error)

	// TotalForPeriod sums a user's personal incomes within [from, to].
	TotalForPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error)

	// FindByDescription returns the most recent income whose description
	// contains the given text, scoped like
	// ExpenseRepository.FindByDescription.
	FindByDescription(ctx context.Context, userID uuid.UUID, groupID *string, description string) (*models.Income, error)

	// UpdateByID applies the non-nil fields of update and returns the
	// updated row.
	UpdateByID(ctx context.Context, id uuid.UUID, update models.IncomeUpdate) (*models.Income, error)

	// DeleteByID removes one income.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every income in the scope and returns the count.
	DeleteAll(ctx context.Context, userID uuid.UUID, groupID *string) (int64, error)
}
