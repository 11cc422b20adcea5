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

const incomeColumns = "id, user_id, group_id, description, amount, source, date, created_at"

// PostgresIncomeRepository implements the IncomeRepository interface
type PostgresIncomeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewIncomeRepository creates a new PostgresIncomeRepository
func NewIncomeRepository(config *RepositoryConfig) repositories.IncomeRepository {
	return &PostgresIncomeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new income
func (r *PostgresIncomeRepository) Create(ctx context.Context, income *models.Income) error {
	if income.ID == uuid.Nil {
		income.ID = uuid.New()
	}
	if income.Date.IsZero() {
		income.Date = time.Now()
	}
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Incomes, incomeColumns)

	_, err := r.pool.Exec(ctx, query,
		income.ID,
		income.UserID,
		income.GroupID,
		income.Description,
		income.Amount,
		income.Source,
		income.Date,
		income.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}

	return nil
}

// ListByUser returns personal incomes (group_id IS NULL), newest first
func (r *PostgresIncomeRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter models.IncomeFilter) ([]models.Income, error) {
	conditions := []string{"user_id = $1", "group_id IS NULL"}
	args := []any{userID}
	conditions, args = appendIncomeFilter(conditions, args, filter, "")

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY date DESC
		%s
	`, incomeColumns, r.tables.Incomes, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows, false)
}

// ListByGroup returns group incomes with their owners populated, newest first
func (r *PostgresIncomeRepository) ListByGroup(ctx context.Context, groupID string, filter models.IncomeFilter) ([]models.Income, error) {
	conditions := []string{"i.group_id = $1"}
	args := []any{groupID}
	conditions, args = appendIncomeFilter(conditions, args, filter, "i.")

	query := fmt.Sprintf(`
		SELECT i.id, i.user_id, i.group_id, i.description, i.amount, i.source, i.date, i.created_at,
		       u.id, u.phone, u.name, u.created_at
		FROM %s i
		JOIN %s u ON u.id = i.user_id
		WHERE %s
		ORDER BY i.date DESC
		%s
	`, r.tables.Incomes, r.tables.Users, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list group incomes: %w", err)
	}
	defer rows.Close()

	return scanIncomes(rows, true)
}

// SummaryBySource totals personal incomes per source in [from, to]
func (r *PostgresIncomeRepository) SummaryBySource(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.SourceTotal, error) {
	query := fmt.Sprintf(`
		SELECT source, SUM(amount)
		FROM %s
		WHERE user_id = $1 AND group_id IS NULL AND date BETWEEN $2 AND $3
		GROUP BY source
		ORDER BY source
	`, r.tables.Incomes)

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("income summary: %w", err)
	}
	defer rows.Close()

	var totals []models.SourceTotal
	for rows.Next() {
		var t models.SourceTotal
		if err := rows.Scan(&t.Source, &t.Total); err != nil {
			return nil, fmt.Errorf("scan income summary: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("income summary: %w", err)
	}

	return totals, nil
}

// TotalForPeriod sums personal incomes in [from, to]
func (r *PostgresIncomeRepository) TotalForPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0)
		FROM %s
		WHERE user_id = $1 AND group_id IS NULL AND date BETWEEN $2 AND $3
	`, r.tables.Incomes)

	var total float64
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("income total: %w", err)
	}

	return total, nil
}

// FindByDescription returns the newest income whose description contains
// the given text. A miss returns (nil, nil).
func (r *PostgresIncomeRepository) FindByDescription(ctx context.Context, userID uuid.UUID, groupID *string, description string) (*models.Income, error) {
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
	`, incomeColumns, r.tables.Incomes, scope)

	var i models.Income
	err := r.pool.QueryRow(ctx, query, arg, "%"+description+"%").Scan(
		&i.ID, &i.UserID, &i.GroupID, &i.Description, &i.Amount, &i.Source, &i.Date, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find income: %w", err)
	}

	return &i, nil
}

// UpdateByID applies the non-nil fields of update and returns the updated row
func (r *PostgresIncomeRepository) UpdateByID(ctx context.Context, id uuid.UUID, update models.IncomeUpdate) (*models.Income, error) {
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
	if update.Source != nil {
		addSet("source", *update.Source)
	}
	if len(sets) == 0 {
		return nil, &domain.ValidationError{Message: "income update has no fields"}
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s
		WHERE id = $1
		RETURNING %s
	`, r.tables.Incomes, strings.Join(sets, ", "), incomeColumns)

	var i models.Income
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&i.ID, &i.UserID, &i.GroupID, &i.Description, &i.Amount, &i.Source, &i.Date, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("income %s not found", id)}
		}
		return nil, fmt.Errorf("update income: %w", err)
	}

	return &i, nil
}

// DeleteByID removes one income
func (r *PostgresIncomeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Incomes)

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("income %s not found", id)}
	}

	return nil
}

// DeleteAll removes every income in the scope and returns the count
func (r *PostgresIncomeRepository) DeleteAll(ctx context.Context, userID uuid.UUID, groupID *string) (int64, error) {
	var (
		query string
		arg   any
	)
	if groupID != nil {
		query = fmt.Sprintf(`DELETE FROM %s WHERE group_id = $1`, r.tables.Incomes)
		arg = *groupID
	} else {
		query = fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND group_id IS NULL`, r.tables.Incomes)
		arg = userID
	}

	tag, err := r.pool.Exec(ctx, query, arg)
	if err != nil {
		return 0, fmt.Errorf("delete all incomes: %w", err)
	}

	return tag.RowsAffected(), nil
}

func appendIncomeFilter(conditions []string, args []any, filter models.IncomeFilter, qualifier string) ([]string, []any) {
	if filter.Source != "" {
		args = append(args, filter.Source)
		conditions = append(conditions, fmt.Sprintf("%ssource = $%d", qualifier, len(args)))
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

func scanIncomes(rows pgx.Rows, withUser bool) ([]models.Income, error) {
	var incomes []models.Income
	for rows.Next() {
		var i models.Income
		var err error
		if withUser {
			var u models.User
			err = rows.Scan(
				&i.ID, &i.UserID, &i.GroupID, &i.Description, &i.Amount, &i.Source, &i.Date, &i.CreatedAt,
				&u.ID, &u.Phone, &u.Name, &u.CreatedAt,
			)
			i.User = &u
		} else {
			err = rows.Scan(
				&i.ID, &i.UserID, &i.GroupID, &i.Description, &i.Amount, &i.Source, &i.Date, &i.CreatedAt,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		incomes = append(incomes, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read incomes: %w", err)
	}

	return incomes, nil
}
