package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/fubble/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"   // Mutable, items may be added and removed
	InvoiceStatusPending InvoiceStatus = "pending" // Finalized, awaiting payment
	InvoiceStatusPaid    InvoiceStatus = "paid"    // Payment received
	InvoiceStatusFailed  InvoiceStatus = "failed"  // Payment attempt failed
	InvoiceStatusVoid    InvoiceStatus = "void"    // Cancelled, no longer collectible
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid,
		InvoiceStatusFailed, InvoiceStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsMutable returns true if items may be added or removed in this status
func (s InvoiceStatus) IsMutable() bool {
	return s == InvoiceStatusDraft
}

// InvoiceItem represents one billable line on an invoice. Items are owned
// exclusively by their invoice and destroyed with it.
type InvoiceItem struct {
	ID          uuid.UUID        `json:"id"`
	InvoiceID   uuid.UUID        `json:"invoice_id"`
	Description string           `json:"description"`
	MetricName  string           `json:"metric_name,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      decimal.Decimal  `json:"amount"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewInvoiceItem creates an invoice item. When unitPrice is nil it is derived:
// amount / quantity if a non-zero quantity is present, otherwise the amount itself.
func NewInvoiceItem(description string, quantity, unitPrice *decimal.Decimal, amount decimal.Decimal) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice item description cannot be empty")
	}

	var price decimal.Decimal
	switch {
	case unitPrice != nil:
		price = *unitPrice
	case quantity != nil && !quantity.IsZero():
		price = amount.Div(*quantity)
	default:
		price = amount
	}

	return &InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   price,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}, nil
}

// GetAmountMoney returns the item amount as a Money value object
func (i *InvoiceItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}

// Invoice represents an invoice aggregate root. Amount is always derived from
// the item amounts and recomputed on every item mutation; it is never set
// independently.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string          `json:"invoice_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	SubscriptionID *uuid.UUID      `json:"subscription_id,omitempty"`
	Status         InvoiceStatus   `json:"status"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        time.Time       `json:"due_date"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Notes          string          `json:"notes"`
	Items          []*InvoiceItem  `json:"items"`
}

// GenerateInvoiceNumber builds an invoice number in the form
// INV-YYYYMMDD-{customer_id}-{timestamp}. The unix timestamp disambiguates
// invoices issued for the same customer on the same day.
func GenerateInvoiceNumber(issueDate time.Time, customerID uuid.UUID) string {
	return fmt.Sprintf("INV-%s-%s-%d", issueDate.Format("20060102"), customerID, time.Now().Unix())
}

// NewInvoice creates a new invoice in draft status
func NewInvoice(customerID uuid.UUID, issueDate, dueDate time.Time, notes string) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, 30)
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date cannot be before the issue date")
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     GenerateInvoiceNumber(issueDate, customerID),
		CustomerID:        customerID,
		Status:            InvoiceStatusDraft,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Amount:            decimal.Zero,
		Notes:             notes,
		Items:             make([]*InvoiceItem, 0),
	}
	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))
	return invoice, nil
}

// ForSubscription links the invoice to the subscription it was generated for
func (inv *Invoice) ForSubscription(subscriptionID uuid.UUID) *Invoice {
	inv.SubscriptionID = &subscriptionID
	return inv
}

// GetAmountMoney returns the invoice amount as a Money value object
func (inv *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Amount)
}

// AddItem appends an item to the invoice. Only draft invoices may be mutated.
func (inv *Invoice) AddItem(item *InvoiceItem) error {
	if !inv.Status.IsMutable() {
		return shared.NewDomainError("INVALID_INVOICE_STATE",
			fmt.Sprintf("Cannot add items to a %s invoice", inv.Status))
	}
	item.InvoiceID = inv.ID
	inv.Items = append(inv.Items, item)
	inv.recomputeAmount()
	return nil
}

// RemoveItem removes an item by ID. Only draft invoices may be mutated.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if !inv.Status.IsMutable() {
		return shared.NewDomainError("INVALID_INVOICE_STATE",
			fmt.Sprintf("Cannot remove items from a %s invoice", inv.Status))
	}
	for i, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			inv.recomputeAmount()
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Invoice item not found")
}

// recomputeAmount derives the invoice amount as the sum of its item amounts
func (inv *Invoice) recomputeAmount() {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Amount)
	}
	inv.Amount = total
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// Finalize transitions a draft invoice to pending. A draft with zero items
// finalizes successfully with a zero amount.
func (inv *Invoice) Finalize() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_INVOICE_STATE",
			fmt.Sprintf("Cannot finalize a %s invoice", inv.Status))
	}
	inv.Status = InvoiceStatusPending
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceFinalizedEvent(inv))
	return nil
}

// MarkPaid records payment on a pending invoice and stamps the paid date
func (inv *Invoice) MarkPaid() error {
	if inv.Status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_INVOICE_STATE",
			fmt.Sprintf("Cannot mark a %s invoice as paid", inv.Status))
	}
	inv.applyStatus(InvoiceStatusPaid)
	inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	return nil
}

// MarkFailed records a failed payment attempt on a pending invoice
func (inv *Invoice) MarkFailed() error {
	if inv.Status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_INVOICE_STATE",
			fmt.Sprintf("Cannot mark a %s invoice as failed", inv.Status))
	}
	inv.applyStatus(InvoiceStatusFailed)
	return nil
}

// Void cancels the invoice. Paid invoices cannot be voided. A non-empty
// reason is appended to the notes.
func (inv *Invoice) Void(reason string) error {
	if inv.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_INVOICE_STATE", "Cannot void a paid invoice")
	}
	if reason != "" {
		if inv.Notes != "" {
			inv.Notes = strings.TrimRight(inv.Notes, "\n") + "\nVoided: " + reason
		} else {
			inv.Notes = "Voided: " + reason
		}
	}
	inv.applyStatus(InvoiceStatusVoid)
	inv.AddDomainEvent(NewInvoiceVoidedEvent(inv, reason))
	return nil
}

// SetStatus sets the status directly, bypassing the finalize guard. This is
// an administrative escape hatch, not a normal transition path. Setting paid
// stamps the paid date like MarkPaid does.
func (inv *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown invoice status %q", status))
	}
	previous := inv.Status
	inv.applyStatus(status)
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, previous))
	return nil
}

func (inv *Invoice) applyStatus(status InvoiceStatus) {
	inv.Status = status
	if status == InvoiceStatusPaid {
		now := time.Now()
		inv.PaidDate = &now
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}
