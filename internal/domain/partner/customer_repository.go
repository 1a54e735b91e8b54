package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// Save persists a customer
	Save(ctx context.Context, customer *Customer) error

	// Update persists changes to an existing customer
	Update(ctx context.Context, customer *Customer) error

	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll returns all customers
	FindAll(ctx context.Context) ([]*Customer, error)

	// FindActive returns all active customers
	FindActive(ctx context.Context) ([]*Customer, error)
}
