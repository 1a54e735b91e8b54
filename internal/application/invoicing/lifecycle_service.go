package invoicing

import (
	"context"

	"github.com/fubble/backend/internal/domain/invoicing"
	"github.com/fubble/backend/internal/domain/partner"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceLifecycleService enforces the invoice state machine: item mutation
// while draft, one-way finalize, payment transitions and void. Guard
// violations surface as INVALID_INVOICE_STATE errors for the caller; nothing
// here is retried.
type InvoiceLifecycleService struct {
	invoiceRepo  invoicing.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewInvoiceLifecycleService creates a new InvoiceLifecycleService
func NewInvoiceLifecycleService(
	invoiceRepo invoicing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *InvoiceLifecycleService {
	return &InvoiceLifecycleService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a manual draft invoice outside a generation run
func (s *InvoiceLifecycleService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(req.CustomerID, req.IssueDate, req.DueDate, req.Notes)
	if err != nil {
		return nil, err
	}
	for _, itemReq := range req.Items {
		item, err := invoicing.NewInvoiceItem(itemReq.Description, itemReq.Quantity, itemReq.UnitPrice, itemReq.Amount)
		if err != nil {
			return nil, err
		}
		item.MetricName = itemReq.MetricName
		if err := invoice.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("created invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("customer_id", invoice.CustomerID.String()))
	return ToInvoiceResponse(invoice), nil
}

// Get retrieves an invoice with its items
func (s *InvoiceLifecycleService) Get(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// ListByCustomer retrieves all invoices for a customer, newest first
func (s *InvoiceLifecycleService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*InvoiceResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, ToInvoiceResponse(invoice))
	}
	return responses, nil
}

// ListByStatus retrieves all invoices in the given status
func (s *InvoiceLifecycleService) ListByStatus(ctx context.Context, status invoicing.InvoiceStatus) ([]*InvoiceResponse, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status: "+string(status))
	}
	invoices, err := s.invoiceRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	responses := make([]*InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, ToInvoiceResponse(invoice))
	}
	return responses, nil
}

// AddItem adds an item to a draft invoice and recomputes its amount
func (s *InvoiceLifecycleService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddItemRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := invoicing.NewInvoiceItem(req.Description, req.Quantity, req.UnitPrice, req.Amount)
	if err != nil {
		return nil, err
	}
	item.MetricName = req.MetricName
	if err := invoice.AddItem(item); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// RemoveItem removes an item from a draft invoice and recomputes its amount
func (s *InvoiceLifecycleService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Finalize transitions a draft invoice to pending
func (s *InvoiceLifecycleService) Finalize(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Finalize(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("finalized invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", invoice.Amount.String()))
	return ToInvoiceResponse(invoice), nil
}

// SetStatus sets the invoice status directly, bypassing the finalize guard.
// Administrative use only.
func (s *InvoiceLifecycleService) SetStatus(ctx context.Context, invoiceID uuid.UUID, status invoicing.InvoiceStatus) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// MarkPaid records payment on a pending invoice
func (s *InvoiceLifecycleService) MarkPaid(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// MarkFailed records a failed payment attempt on a pending invoice
func (s *InvoiceLifecycleService) MarkFailed(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkFailed(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Void voids an invoice, appending the optional reason to its notes
func (s *InvoiceLifecycleService) Void(ctx context.Context, invoiceID uuid.UUID, reason string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Void(reason); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("voided invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("reason", reason))
	return ToInvoiceResponse(invoice), nil
}
