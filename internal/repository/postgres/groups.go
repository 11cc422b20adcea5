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

// PostgresGroupRepository implements the GroupRepository interface
type PostgresGroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGroupRepository creates a new PostgresGroupRepository
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &PostgresGroupRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves a group by its transport identity
func (r *PostgresGroupRepository) Get(ctx context.Context, groupID string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Groups)

	var group models.Group
	err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&group.ID,
		&group.Name,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("group %s not found", groupID)}
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	return &group, nil
}

// EnsureMember upserts the group and the sender's membership in it.
func (r *PostgresGroupRepository) EnsureMember(ctx context.Context, groupID string, userID uuid.UUID, groupName string) error {
	if err := r.upsertGroup(ctx, groupID, groupName); err != nil {
		return err
	}
	return r.upsertMember(ctx, groupID, userID, models.RoleMember, false)
}

// AddMember upserts a membership with the given role.
func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupID string, userID uuid.UUID, role string) error {
	if err := r.upsertGroup(ctx, groupID, ""); err != nil {
		return err
	}
	return r.upsertMember(ctx, groupID, userID, role, true)
}

// Members lists memberships with user records populated
func (r *PostgresGroupRepository) Members(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	query := fmt.Sprintf(`
		SELECT m.group_id, m.user_id, m.role, m.joined_at,
		       u.id, u.phone, u.name, u.created_at
		FROM %s m
		JOIN %s u ON u.id = m.user_id
		WHERE m.group_id = $1
		ORDER BY m.joined_at
	`, r.tables.GroupMembers, r.tables.Users)

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		var u models.User
		if err := rows.Scan(
			&m.GroupID, &m.UserID, &m.Role, &m.JoinedAt,
			&u.ID, &u.Phone, &u.Name, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		m.User = &u
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}

	return members, nil
}

func (r *PostgresGroupRepository) upsertGroup(ctx context.Context, groupID, name string) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE %[1]s.name END
	`, r.tables.Groups)

	if _, err := r.pool.Exec(ctx, query, groupID, name, time.Now()); err != nil {
		return fmt.Errorf("upsert group: %w", err)
	}
	return nil
}

func (r *PostgresGroupRepository) upsertMember(ctx context.Context, groupID string, userID uuid.UUID, role string, updateRole bool) error {
	conflict := "DO NOTHING"
	if updateRole {
		conflict = "DO UPDATE SET role = EXCLUDED.role"
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_id, user_id) %s
	`, r.tables.GroupMembers, conflict)

	if _, err := r.pool.Exec(ctx, query, groupID, userID, role, time.Now()); err != nil {
		return fmt.Errorf("upsert group member: %w", err)
	}
	return nil
}
