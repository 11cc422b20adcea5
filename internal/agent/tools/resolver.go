package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
	"github.com/thallesrafaell/jurandir-finance/internal/domain/repositories"
)

// MemberResolver maps a display name mentioned in chat to a group
// member, provisioning a placeholder member when nobody matches. A
// placeholder gets a synthetic phone so a later lookup by the same name
// finds the same member instead of creating another.
type MemberResolver struct {
	users  repositories.UserRepository
	groups repositories.GroupRepository
	logger *slog.Logger
}

// NewMemberResolver creates a MemberResolver.
func NewMemberResolver(users repositories.UserRepository, groups repositories.GroupRepository, logger *slog.Logger) *MemberResolver {
	return &MemberResolver{
		users:  users,
		groups: groups,
		logger: logger,
	}
}

// Resolve returns the user id for the named member. Exact
// case-insensitive display-name match wins; else the first substring
// match in membership order; else a new placeholder member is created.
// Resolution never reports "not found".
func (r *MemberResolver) Resolve(ctx context.Context, groupID, name string) (uuid.UUID, error) {
	members, err := r.groups.Members(ctx, groupID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve member: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(name))

	for _, m := range members {
		if m.User != nil && strings.ToLower(m.User.Name) == search {
			return m.UserID, nil
		}
	}
	for _, m := range members {
		if m.User != nil && m.User.Name != "" && strings.Contains(strings.ToLower(m.User.Name), search) {
			return m.UserID, nil
		}
	}

	return r.provision(ctx, groupID, strings.TrimSpace(name))
}

// DisplayName returns the stored display name for a group member,
// falling back to the provided name when the member has none.
func (r *MemberResolver) DisplayName(ctx context.Context, groupID string, userID uuid.UUID, fallback string) string {
	members, err := r.groups.Members(ctx, groupID)
	if err != nil {
		return fallback
	}
	for _, m := range members {
		if m.UserID == userID && m.User != nil && m.User.Name != "" {
			return m.User.Name
		}
	}
	return fallback
}

// provision creates a placeholder user bound to the group. The phone is
// synthetic and unique, so the member can never collide with a real
// phone-backed identity.
func (r *MemberResolver) provision(ctx context.Context, groupID, name string) (uuid.UUID, error) {
	user := &models.User{
		ID:    uuid.New(),
		Phone: fmt.Sprintf("virtual_%s_%s", strings.ReplaceAll(strings.ToLower(name), " ", "_"), uuid.NewString()[:8]),
		Name:  name,
	}
	if err := r.users.Create(ctx, user); err != nil {
		return uuid.Nil, fmt.Errorf("provision member: %w", err)
	}
	if err := r.groups.AddMember(ctx, groupID, user.ID, models.RoleMember); err != nil {
		return uuid.Nil, fmt.Errorf("provision member: %w", err)
	}

	r.logger.Info("provisioned placeholder member", "group_id", groupID, "name", name, "user_id", user.ID)

	return user.ID, nil
}
