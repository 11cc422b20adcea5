package models

import (
	"time"

	"github.com/google/uuid"
)

// Group member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group is a shared conversation whose members record expenses together.
// The ID is the raw transport identity of the group chat.
type Group struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// GroupMember links a user to a group.
type GroupMember struct {
	GroupID  string
	UserID   uuid.UUID
	Role     string
	JoinedAt time.Time

	// User is populated by repository reads that join the member row
	// with its user record.
	User *User
}
