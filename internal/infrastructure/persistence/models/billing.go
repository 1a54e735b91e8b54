package models

import (
	"encoding/json"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageEventModel is the persistence model for usage events.
type UsageEventModel struct {
	BaseModel
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index:idx_usage_customer_time,priority:1"`
	MetricName string          `gorm:"type:varchar(100);not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EventTime  time.Time       `gorm:"not null;index:idx_usage_customer_time,priority:2"`
	Properties []byte          `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (UsageEventModel) TableName() string {
	return "usage_events"
}

// ToDomain converts the persistence model to a domain UsageEvent.
func (m *UsageEventModel) ToDomain() *billing.UsageEvent {
	var properties billing.Properties
	if len(m.Properties) > 0 {
		_ = json.Unmarshal(m.Properties, &properties)
	}
	return &billing.UsageEvent{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		MetricName: m.MetricName,
		Quantity:   m.Quantity,
		EventTime:  m.EventTime,
		Properties: properties,
	}
}

// UsageEventModelFromDomain creates a persistence model from a domain UsageEvent.
func UsageEventModelFromDomain(e *billing.UsageEvent) *UsageEventModel {
	var properties []byte
	if len(e.Properties) > 0 {
		properties, _ = json.Marshal(e.Properties)
	}
	m := &UsageEventModel{
		CustomerID: e.CustomerID,
		MetricName: e.MetricName,
		Quantity:   e.Quantity,
		EventTime:  e.EventTime,
		Properties: properties,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// SubscriptionModel is the persistence model for the Subscription aggregate.
type SubscriptionModel struct {
	AggregateModel
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartDate  time.Time  `gorm:"not null"`
	EndDate    *time.Time `gorm:"index"`
	IsActive   bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *billing.Subscription {
	return &billing.Subscription{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		PlanID:            m.PlanID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Subscription.
func (m *SubscriptionModel) FromDomain(s *billing.Subscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerID = s.CustomerID
	m.PlanID = s.PlanID
	m.StartDate = s.StartDate
	m.EndDate = s.EndDate
	m.IsActive = s.IsActive
}

// SubscriptionModelFromDomain creates a persistence model from a domain Subscription.
func SubscriptionModelFromDomain(s *billing.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{}
	m.FromDomain(s)
	return m
}
