package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// GroupRepository persists group chats and their memberships.
type GroupRepository interface {
	// Get returns a group by its transport identity.
	// Returns domain.ErrNotFound if the group was never seen.
	Get(ctx context.Context, groupID string) (*models.Group, error)

	// EnsureMember upserts the group (updating its name when provided)
	// and upserts the user as a member. Called for every inbound group
	// message so senders self-register.
	EnsureMember(ctx context.Context, groupID string, userID uuid.UUID, groupName string) error

	// AddMember upserts a membership with the given role.
	AddMember(ctx context.Context, groupID string, userID uuid.UUID, role string) error

	// Members lists the group's memberships with their user records
	// populated, in join order.
	Members(ctx context.Context, groupID string) ([]models.GroupMember, error)
}
