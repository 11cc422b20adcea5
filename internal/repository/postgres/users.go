package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thallesrafaell/jurandir-finance/internal/domain"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new PostgresUserRepository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetOrCreateByPhone upserts a user keyed by phone. A non-empty name
// replaces the stored one; an empty name leaves it alone.
func (r *PostgresUserRepository) GetOrCreateByPhone(ctx context.Context, phone, name string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, phone, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE %[1]s.name END
		RETURNING id, phone, name, created_at
	`, r.tables.Users)

	var user models.User
	err := r.pool.QueryRow(ctx, query, uuid.New(), phone, name, time.Now()).Scan(
		&user.ID,
		&user.Phone,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by primary key
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, phone, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Phone,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("user %s not found", id)}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// Create inserts a new user row
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, phone, name, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Users)

	if _, err := r.pool.Exec(ctx, query, user.ID, user.Phone, user.Name, user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}
