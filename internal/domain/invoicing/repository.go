package invoicing

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for persisting and querying invoices.
// Implementations load and store items together with their invoice.
type InvoiceRepository interface {
	// Save persists a new invoice with its items
	Save(ctx context.Context, invoice *Invoice) error

	// Update persists changes to an existing invoice and its items
	Update(ctx context.Context, invoice *Invoice) error

	// FindByID retrieves an invoice with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber retrieves an invoice by its invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindByCustomer retrieves all invoices for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Invoice, error)

	// FindByStatus retrieves all invoices in the given status
	FindByStatus(ctx context.Context, status InvoiceStatus) ([]*Invoice, error)

	// Delete removes an invoice and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
