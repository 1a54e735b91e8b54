package partner

import (
	"context"
	"errors"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/partner"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer and subscription management
type CustomerService struct {
	customerRepo     partner.CustomerRepository
	subscriptionRepo billing.SubscriptionRepository
	logger           *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	subscriptionRepo billing.SubscriptionRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo:     customerRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Create creates a customer. A duplicate email is rejected.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
	}

	customer, err := partner.NewCustomer(req.Name, req.Email, req.Company)
	if err != nil {
		return nil, err
	}
	if req.BillingAddress != "" || req.PaymentMethodID != "" {
		customer.SetBillingDetails(req.BillingAddress, req.PaymentMethodID)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("created customer",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))
	return ToCustomerResponse(customer), nil
}

// Get retrieves a customer by ID
func (s *CustomerService) Get(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// List retrieves all customers
func (s *CustomerService) List(ctx context.Context) ([]*CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, ToCustomerResponse(customer))
	}
	return responses, nil
}

// ListSubscriptions retrieves all subscriptions for a customer
func (s *CustomerService) ListSubscriptions(ctx context.Context, customerID uuid.UUID) ([]*SubscriptionResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	subs, err := s.subscriptionRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	responses := make([]*SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, ToSubscriptionResponse(sub))
	}
	return responses, nil
}

// Subscribe creates a subscription linking the customer to a plan
func (s *CustomerService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	sub, err := billing.NewSubscription(req.CustomerID, req.PlanID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info("created subscription",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("plan_id", req.PlanID.String()))
	return ToSubscriptionResponse(sub), nil
}

// CancelSubscription closes a subscription at the given time, defaulting to now
func (s *CustomerService) CancelSubscription(ctx context.Context, subscriptionID uuid.UUID, at time.Time) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := sub.Cancel(at); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return ToSubscriptionResponse(sub), nil
}
