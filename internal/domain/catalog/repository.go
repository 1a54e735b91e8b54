package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository defines persistence for plans and their price components
type PlanRepository interface {
	// Save persists a plan together with its price components
	Save(ctx context.Context, plan *Plan) error

	// FindByID retrieves a plan with its components ordered by sort order
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindActive retrieves all active plans
	FindActive(ctx context.Context) ([]*Plan, error)

	// Delete removes a plan and its components
	Delete(ctx context.Context, id uuid.UUID) error
}
