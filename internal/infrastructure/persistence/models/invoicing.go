package models

import (
	"time"

	"github.com/fubble/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber  string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	CustomerID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	SubscriptionID *uuid.UUID              `gorm:"type:uuid;index"`
	Status         invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	IssueDate      time.Time               `gorm:"not null"`
	DueDate        time.Time               `gorm:"not null"`
	PaidDate       *time.Time              ``
	Amount         decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Notes          string                  `gorm:"type:text"`
	Items          []InvoiceItemModel      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for an invoice line item.
type InvoiceItemModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Description string           `gorm:"type:text;not null"`
	MetricName  string           `gorm:"type:varchar(100)"`
	Quantity    *decimal.Decimal `gorm:"type:decimal(18,4)"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(18,6);not null;default:0"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem.
func (m *InvoiceItemModel) ToDomain() *invoicing.InvoiceItem {
	return &invoicing.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		MetricName:  m.MetricName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// InvoiceItemModelFromDomain creates a persistence model from a domain InvoiceItem.
func InvoiceItemModelFromDomain(item *invoicing.InvoiceItem) InvoiceItemModel {
	return InvoiceItemModel{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		Description: item.Description,
		MetricName:  item.MetricName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
		CreatedAt:   item.CreatedAt,
	}
}

// ToDomain converts the persistence model to a domain Invoice with its items.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	items := make([]*invoicing.InvoiceItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToDomain())
	}
	return &invoicing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		CustomerID:        m.CustomerID,
		SubscriptionID:    m.SubscriptionID,
		Status:            m.Status,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		PaidDate:          m.PaidDate,
		Amount:            m.Amount,
		Notes:             m.Notes,
		Items:             items,
	}
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.SubscriptionID = inv.SubscriptionID
	m.Status = inv.Status
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.PaidDate = inv.PaidDate
	m.Amount = inv.Amount
	m.Notes = inv.Notes
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModelFromDomain(item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
