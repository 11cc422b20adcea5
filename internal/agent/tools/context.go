package tools

import "github.com/google/uuid"

// MessageContext identifies who sent the utterance and in which scope
// the tools must operate.
type MessageContext struct {
	UserID  uuid.UUID
	GroupID string
	IsGroup bool
}

// Scope returns the group id for group conversations, nil for private
// ones. Repositories use nil to mean "the sender's personal records".
func (mc MessageContext) Scope() *string {
	if mc.IsGroup && mc.GroupID != "" {
		g := mc.GroupID
		return &g
	}
	return nil
}
