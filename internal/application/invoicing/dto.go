package invoicing

import (
	"time"

	"github.com/fubble/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest carries one invoice item to be added. Quantity and UnitPrice
// are optional; a missing unit price is derived from the amount.
type AddItemRequest struct {
	Description string           `json:"description"`
	MetricName  string           `json:"metric_name,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
}

// CreateInvoiceRequest creates a manual draft invoice
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID        `json:"customer_id"`
	IssueDate  time.Time        `json:"issue_date,omitempty"`
	DueDate    time.Time        `json:"due_date,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Items      []AddItemRequest `json:"items,omitempty"`
}

// InvoiceItemResponse is the API representation of an invoice item
type InvoiceItemResponse struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	MetricName  string           `json:"metric_name,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      decimal.Decimal  `json:"amount"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	InvoiceNumber  string                `json:"invoice_number"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	SubscriptionID *uuid.UUID            `json:"subscription_id,omitempty"`
	Status         string                `json:"status"`
	IssueDate      time.Time             `json:"issue_date"`
	DueDate        time.Time             `json:"due_date"`
	PaidDate       *time.Time            `json:"paid_date,omitempty"`
	Amount         decimal.Decimal       `json:"amount"`
	Notes          string                `json:"notes,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice to its API representation
func ToInvoiceResponse(invoice *invoicing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			MetricName:  item.MetricName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return &InvoiceResponse{
		ID:             invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		CustomerID:     invoice.CustomerID,
		SubscriptionID: invoice.SubscriptionID,
		Status:         invoice.Status.String(),
		IssueDate:      invoice.IssueDate,
		DueDate:        invoice.DueDate,
		PaidDate:       invoice.PaidDate,
		Amount:         invoice.Amount,
		Notes:          invoice.Notes,
		Items:          items,
		CreatedAt:      invoice.CreatedAt,
		UpdatedAt:      invoice.UpdatedAt,
	}
}
