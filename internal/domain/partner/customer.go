package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/fubble/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer represents a billable customer. It is the aggregate root the
// billing engine generates invoices for; subscriptions and usage events
// reference it by ID.
type Customer struct {
	shared.BaseAggregateRoot
	Name            string
	Email           string
	Company         string
	BillingAddress  string
	PaymentMethodID string
	Status          CustomerStatus
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, email, company string) (*Customer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(email),
		Company:           company,
		Status:            CustomerStatusActive,
	}
	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))
	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, email, company string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	c.Name = name
	c.Email = strings.ToLower(email)
	c.Company = company
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetBillingDetails sets the billing address and payment method reference.
// The payment method ID is an opaque token owned by the external payment
// collaborator; it is never interpreted here.
func (c *Customer) SetBillingDetails(billingAddress, paymentMethodID string) {
	c.BillingAddress = billingAddress
	c.PaymentMethodID = paymentMethodID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate marks the customer as inactive. Existing invoices stay
// untouched; invoice generation skips inactive customers.
func (c *Customer) Deactivate() {
	if c.Status == CustomerStatusInactive {
		return
	}
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewCustomerDeactivatedEvent(c))
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_INPUT", "Customer email is not valid")
	}
	return nil
}
