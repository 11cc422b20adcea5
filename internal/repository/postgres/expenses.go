package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thallesrafaell/jurandir-finance/internal/domain"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

const expenseColumns = "id, user_id, group_id, description, amount, category, date, paid, created_at"

// PostgresExpenseRepository implements the ExpenseRepository interface
type PostgresExpenseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewExpenseRepository creates a new PostgresExpenseRepository
func NewExpenseRepository(config *RepositoryConfig) repositories.ExpenseRepository {
	return &PostgresExpenseRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new expense
func (r *PostgresExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Expenses, expenseColumns)

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.GroupID,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.Date,
		expense.Paid,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	return nil
}

// ListByUser returns personal expenses (group_id IS NULL), newest first
func (r *PostgresExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.Expense, error) {
	conditions := []string{"user_id = $1", "group_id IS NULL"}
	args := []any{userID}
	conditions, args = appendExpenseFilter(conditions, args, filter, "")

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY date DESC
		%s
	`, expenseColumns, r.tables.Expenses, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows, false)
}

// ListByGroup returns group expenses with their owners populated, newest first
func (r *PostgresExpenseRepository) ListByGroup(ctx context.Context, groupID string, filter models.ExpenseFilter) ([]models.Expense, error) {
	conditions := []string{"e.group_id = $1"}
	args := []any{groupID}
	conditions, args = appendExpenseFilter(conditions, args, filter, "e.")

	query := fmt.Sprintf(`
		SELECT e.id, e.user_id, e.group_id, e.description, e.amount, e.category, e.date, e.paid, e.created_at,
		       u.id, u.phone, u.name, u.created_at
		FROM %s e
		JOIN %s u ON u.id = e.user_id
		WHERE %s
		ORDER BY e.date DESC
		%s
	`, r.tables.Expenses, r.tables.Users, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list group expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows, true)
}

// SummaryByCategory totals personal expenses per category in [from, to]
func (r *PostgresExpenseRepository) SummaryByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.CategoryTotal, error) {
	query := fmt.Sprintf(`
		SELECT category, SUM(amount)
		FROM %s
		WHERE user_id = $1 AND group_id IS NULL AND date BETWEEN $2 AND $3
		GROUP BY category
		ORDER BY category
	`, r.tables.Expenses)

	return r.queryCategoryTotals(ctx, query, userID, from, to)
}

// GroupSummaryByCategory totals group expenses per category in [from, to]
func (r *PostgresExpenseRepository) GroupSummaryByCategory(ctx context.Context, groupID string, from, to time.Time) ([]models.CategoryTotal, error) {
	query := fmt.Sprintf(`
		SELECT category, SUM(amount)
		FROM %s
		WHERE group_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY category
		ORDER BY category
	`, r.tables.Expenses)

	return r.queryCategoryTotals(ctx, query, groupID, from, to)
}

// FindByDescription returns the newest expense whose description contains
// the given text. Group scope searches the whole group regardless of owner.
// A miss returns (nil, nil).
func (r *PostgresExpenseRepository) FindByDescription(ctx context.Context, userID uuid.UUID, groupID *string, description string) (*models.Expense, error) {
	var (
		scope string
		arg   any
	)
	if groupID != nil {
		scope = "group_id = $1"
		arg = *groupID
	} else {
		scope = "user_id = $1 AND group_id IS NULL"
		arg = userID
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s AND description ILIKE $2
		ORDER BY date DESC
		LIMIT 1
	`, expenseColumns, r.tables.Expenses, scope)

	var e models.Expense
	err := r.pool.QueryRow(ctx, query, arg, "%"+description+"%").Scan(
		&e.ID, &e.UserID, &e.GroupID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.Paid, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	return &e, nil
}

// UpdateByID applies the non-nil fields of update and returns the updated row
func (r *PostgresExpenseRepository) UpdateByID(ctx context.Context, id uuid.UUID, update models.ExpenseUpdate) (*models.Expense, error) {
	sets := []string{}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Amount != nil {
		addSet("amount", *update.Amount)
	}
	if update.Category != nil {
		addSet("category", *update.Category)
	}
	if update.Paid != nil {
		addSet("paid", *update.Paid)
	}
	if len(sets) == 0 {
		return nil, &domain.ValidationError{Message: "expense update has no fields"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s
		WHERE id = $1
		RETURNING %s
	`, r.tables.Expenses, strings.Join(sets, ", "), expenseColumns)

	var e models.Expense
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.UserID, &e.GroupID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.Paid, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("expense %s not found", id)}
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}

	return &e, nil
}

// DeleteByID removes one expense
func (r *PostgresExpenseRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Expenses)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("expense %s not found", id)}
	}

	return nil
}

// DeleteAll removes every expense in the scope and returns the count
func (r *PostgresExpenseRepository) DeleteAll(ctx context.Context, userID uuid.UUID, groupID *string) (int64, error) {
	var (
		query string
		arg   any
	)
	if groupID != nil {
		query = fmt.Sprintf(`DELETE FROM %s WHERE group_id = $1`, r.tables.Expenses)
		arg = *groupID
	} else {
		query = fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND group_id IS NULL`, r.tables.Expenses)
		arg = userID
	}

	tag, err := r.pool.Exec(ctx, query, arg)
	if err != nil {
		return 0, fmt.Errorf("delete all expenses: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SetPaid flips the paid flag on one expense
func (r *PostgresExpenseRepository) SetPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	query := fmt.Sprintf(`UPDATE %s SET paid = $2 WHERE id = $1`, r.tables.Expenses)

	tag, err := r.pool.Exec(ctx, query, id, paid)
	if err != nil {
		return fmt.Errorf("set expense paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("expense %s not found", id)}
	}

	return nil
}

func (r *PostgresExpenseRepository) queryCategoryTotals(ctx context.Context, query string, args ...any) ([]models.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("scan expense summary: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}

	return totals, nil
}

func appendExpenseFilter(conditions []string, args []any, filter models.ExpenseFilter, qualifier string) ([]string, []any) {
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("%scategory = $%d", qualifier, len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("%sdate >= $%d", qualifier, len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("%sdate <= $%d", qualifier, len(args)))
	}
	return conditions, args
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf("LIMIT %d", limit)
}

func scanExpenses(rows pgx.Rows, withUser bool) ([]models.Expense, error) {
	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var err error
		if withUser {
			var u models.User
			err = rows.Scan(
				&e.ID, &e.UserID, &e.GroupID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.Paid, &e.CreatedAt,
				&u.ID, &u.Phone, &u.Name, &u.CreatedAt,
			)
			e.User = &u
		} else {
			err = rows.Scan(
				&e.ID, &e.UserID, &e.GroupID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.Paid, &e.CreatedAt,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}

	return expenses, nil
}
