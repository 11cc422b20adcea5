package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// ExpenseRepository persists spending records.
//
// Description lookups are case-insensitive substring matches returning the
// most recent hit, which is how users refer to records in chat ("remove
// Nubank"). A miss is reported as (nil, nil), not an error - "not found" is
// a normal outcome for the caller.
type ExpenseRepository interface {
	// Create inserts a new expense and fills its generated fields.
	Create(ctx context.Context, expense *models.Expense) error

	// ListByUser returns a user's personal expenses, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.Expense, error)

	// ListByGroup returns a group's expenses with User populated, newest first.
	ListByGroup(ctx context.Context, groupID string, filter models.ExpenseFilter) ([]models.Expense, error)

	// SummaryByCategory totals a user's personal expenses per category
	// within [from, to].
	SummaryByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.CategoryTotal, error)

	// GroupSummaryByCategory totals a group's expenses per category
	// within [from, to].
	GroupSummaryByCategory(ctx context.Context, groupID string, from, to time.Time) ([]models.CategoryTotal, error)

	// FindByDescription returns the most recent expense whose description
	// contains the given text. With a group id the search spans the whole
	// group; otherwise it is limited to the user's personal records.
	FindByDescription(ctx context.Context, userID uuid.UUID, groupID *string, description string) (*models.Expense, error)

	// UpdateByID applies the non-nil fields of update and returns the
	// updated row.
	UpdateByID(ctx context.Context, id uuid.UUID, update models.ExpenseUpdate) (*models.Expense, error)

	// DeleteByID removes one expense.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every expense in the scope (group-wide with a
	// group id, else the user's personal records) and returns the count.
	DeleteAll(ctx context.Context, userID uuid.UUID, groupID *string) (int64, error)

	// SetPaid flips the paid flag on one expense.
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) error
}
