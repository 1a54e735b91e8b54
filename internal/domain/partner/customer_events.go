package partner

import (
	"github.com/fubble/backend/internal/domain/shared"
)

const (
	EventTypeCustomerCreated     = "partner.customer.created"
	EventTypeCustomerDeactivated = "partner.customer.deactivated"
)

// CustomerCreatedEvent is raised when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCustomerCreatedEvent creates a customer created event
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Name:            c.Name,
		Email:           c.Email,
	}
}

// CustomerDeactivatedEvent is raised when a customer is deactivated
type CustomerDeactivatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCustomerDeactivatedEvent creates a customer deactivated event
func NewCustomerDeactivatedEvent(c *Customer) *CustomerDeactivatedEvent {
	return &CustomerDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeactivated, "Customer", c.ID),
		Name:            c.Name,
	}
}
