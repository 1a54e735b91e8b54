package billing

import (
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	EventTypeSubscriptionCreated   = "billing.subscription.created"
	EventTypeSubscriptionCancelled = "billing.subscription.cancelled"
)

// SubscriptionCreatedEvent is raised when a subscription is created
type SubscriptionCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID  `json:"customer_id"`
	PlanID     uuid.UUID  `json:"plan_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// NewSubscriptionCreatedEvent creates a subscription created event
func NewSubscriptionCreatedEvent(sub *Subscription) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCreated, "Subscription", sub.ID),
		CustomerID:      sub.CustomerID,
		PlanID:          sub.PlanID,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
	}
}

// SubscriptionCancelledEvent is raised when a subscription is cancelled
type SubscriptionCancelledEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID  `json:"customer_id"`
	PlanID     uuid.UUID  `json:"plan_id"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// NewSubscriptionCancelledEvent creates a subscription cancelled event
func NewSubscriptionCancelledEvent(sub *Subscription) *SubscriptionCancelledEvent {
	return &SubscriptionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCancelled, "Subscription", sub.ID),
		CustomerID:      sub.CustomerID,
		PlanID:          sub.PlanID,
		EndDate:         sub.EndDate,
	}
}
