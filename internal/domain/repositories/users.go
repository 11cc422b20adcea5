package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// UserRepository persists user identities keyed by phone number.
type UserRepository interface {
	// GetOrCreateByPhone returns the user bound to the given phone,
	// creating it if absent. A non-empty name updates the stored
	// display name (the transport may learn it late).
	GetOrCreateByPhone(ctx context.Context, phone, name string) (*models.User, error)

	// GetByID returns a user by primary key.
	// Returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Create inserts a new user. Used for placeholder members whose
	// phone is synthetic.
	Create(ctx context.Context, user *models.User) error
}
