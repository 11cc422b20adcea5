package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/thallesrafaell/jurandir-finance/internal/domain/models"
)

// InvestmentRepository persists asset positions.
type InvestmentRepository interface {
	// Create inserts a new investment and fills its generated fields.
	Create(ctx context.Context, investment *models.Investment) error

	// ListByUser returns a user's positions, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Investment, error)
}
