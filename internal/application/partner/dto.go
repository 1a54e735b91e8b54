package partner

import (
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest creates a customer
type CreateCustomerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Company         string `json:"company"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethodID string `json:"payment_method_id"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Company         string    `json:"company,omitempty"`
	BillingAddress  string    `json:"billing_address,omitempty"`
	PaymentMethodID string    `json:"payment_method_id,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToCustomerResponse converts a customer to its API representation
func ToCustomerResponse(customer *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:              customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
		Company:         customer.Company,
		BillingAddress:  customer.BillingAddress,
		PaymentMethodID: customer.PaymentMethodID,
		Status:          string(customer.Status),
		CreatedAt:       customer.CreatedAt,
	}
}

// SubscribeRequest links a customer to a plan
type SubscribeRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	PlanID     uuid.UUID  `json:"plan_id" binding:"required"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// SubscriptionResponse is the API representation of a subscription
type SubscriptionResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	PlanID     uuid.UUID  `json:"plan_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// ToSubscriptionResponse converts a subscription to its API representation
func ToSubscriptionResponse(sub *billing.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:         sub.ID,
		CustomerID: sub.CustomerID,
		PlanID:     sub.PlanID,
		StartDate:  sub.StartDate,
		EndDate:    sub.EndDate,
		IsActive:   sub.IsActive,
	}
}
