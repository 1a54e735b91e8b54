package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/fubble/backend/internal/domain/invoicing"
	"github.com/fubble/backend/internal/domain/partner"
	"github.com/fubble/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GenerationConfig contains configuration for invoice generation
type GenerationConfig struct {
	// PaymentTermDays is added to the issue date to derive the due date
	PaymentTermDays int

	// DefaultFrequency derives the billing window when no explicit period is
	// given and the plan carries no usable frequency
	DefaultFrequency catalog.BillingFrequency
}

// DefaultGenerationConfig returns default configuration
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		PaymentTermDays:  30,
		DefaultFrequency: catalog.BillingFrequencyMonthly,
	}
}

// InvoiceGenerationService drives invoice generation per customer per period:
// resolve the billing windows, aggregate usage, evaluate each price component
// and assemble a draft invoice. Failures are isolated per customer so one
// misconfigured plan does not abort the whole run.
type InvoiceGenerationService struct {
	customerRepo     partner.CustomerRepository
	planRepo         catalog.PlanRepository
	subscriptionRepo billing.SubscriptionRepository
	usageEventRepo   billing.UsageEventRepository
	invoiceRepo      invoicing.InvoiceRepository
	evaluator        *pricing.Evaluator
	config           GenerationConfig
	logger           *zap.Logger
}

// NewInvoiceGenerationService creates a new InvoiceGenerationService
func NewInvoiceGenerationService(
	customerRepo partner.CustomerRepository,
	planRepo catalog.PlanRepository,
	subscriptionRepo billing.SubscriptionRepository,
	usageEventRepo billing.UsageEventRepository,
	invoiceRepo invoicing.InvoiceRepository,
	evaluator *pricing.Evaluator,
	config GenerationConfig,
	logger *zap.Logger,
) *InvoiceGenerationService {
	if config.PaymentTermDays <= 0 {
		config.PaymentTermDays = 30
	}
	if config.DefaultFrequency == "" {
		config.DefaultFrequency = catalog.BillingFrequencyMonthly
	}
	return &InvoiceGenerationService{
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		usageEventRepo:   usageEventRepo,
		invoiceRepo:      invoiceRepo,
		evaluator:        evaluator,
		config:           config,
		logger:           logger,
	}
}

// CustomerFailure records one customer whose generation failed
type CustomerFailure struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Error      string    `json:"error"`
}

// GenerationReport is the outcome of one generation run. Skipped customers
// had no subscription overlapping the window; that is not an error.
type GenerationReport struct {
	Invoices []*invoicing.Invoice `json:"invoices"`
	Skipped  []uuid.UUID          `json:"skipped"`
	Failures []CustomerFailure    `json:"failures"`
}

// GenerateInvoices generates draft invoices for every customer with a
// subscription overlapping the period. When customerID is non-nil the run is
// restricted to that customer. A zero start or end date derives the window
// from each plan's billing frequency ending now.
func (s *InvoiceGenerationService) GenerateInvoices(ctx context.Context, startDate, endDate time.Time, customerID *uuid.UUID) (*GenerationReport, error) {
	report := &GenerationReport{
		Invoices: make([]*invoicing.Invoice, 0),
		Skipped:  make([]uuid.UUID, 0),
		Failures: make([]CustomerFailure, 0),
	}

	customerIDs, err := s.resolveCustomers(ctx, startDate, endDate, customerID)
	if err != nil {
		return nil, err
	}

	for _, id := range customerIDs {
		invoices, err := s.generateForCustomer(ctx, id, startDate, endDate)
		if err != nil {
			s.logger.Warn("invoice generation failed for customer",
				zap.String("customer_id", id.String()),
				zap.Error(err))
			report.Failures = append(report.Failures, CustomerFailure{CustomerID: id, Error: err.Error()})
			continue
		}
		if len(invoices) == 0 {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		report.Invoices = append(report.Invoices, invoices...)
	}

	s.logger.Info("invoice generation run finished",
		zap.Int("invoices", len(report.Invoices)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failures", len(report.Failures)))
	return report, nil
}

func (s *InvoiceGenerationService) resolveCustomers(ctx context.Context, startDate, endDate time.Time, customerID *uuid.UUID) ([]uuid.UUID, error) {
	if customerID != nil {
		// Surfaces CUSTOMER_NOT_FOUND from the repository
		if _, err := s.customerRepo.FindByID(ctx, *customerID); err != nil {
			return nil, err
		}
		return []uuid.UUID{*customerID}, nil
	}

	if !startDate.IsZero() && !endDate.IsZero() {
		period, err := billing.NewPeriod(startDate, endDate)
		if err != nil {
			return nil, err
		}
		return s.subscriptionRepo.CustomerIDsWithSubscriptions(ctx, period)
	}

	customers, err := s.customerRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// generateForCustomer produces one draft invoice per subscription window.
// Returning no invoices means the customer had no overlapping subscription.
func (s *InvoiceGenerationService) generateForCustomer(ctx context.Context, customerID uuid.UUID, startDate, endDate time.Time) ([]*invoicing.Invoice, error) {
	subscriptions, err := s.subscriptionRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoicing.Invoice, 0, 1)
	for _, sub := range subscriptions {
		plan, err := s.planRepo.FindByID(ctx, sub.PlanID)
		if err != nil {
			return nil, err
		}

		period, err := s.resolvePeriod(plan, startDate, endDate)
		if err != nil {
			return nil, err
		}
		window, ok := sub.EffectiveWindow(period)
		if !ok {
			continue
		}

		invoice, err := s.assembleInvoice(ctx, sub, plan, window)
		if err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

// resolvePeriod derives the billing window from the plan frequency when no
// explicit dates are given
func (s *InvoiceGenerationService) resolvePeriod(plan *catalog.Plan, startDate, endDate time.Time) (billing.Period, error) {
	if endDate.IsZero() {
		endDate = time.Now()
	}
	if startDate.IsZero() {
		frequency := plan.Frequency
		if !frequency.IsValid() {
			frequency = s.config.DefaultFrequency
		}
		startDate = frequency.PeriodStart(endDate)
	}
	return billing.NewPeriod(startDate, endDate)
}

// assembleInvoice aggregates usage over the window, evaluates every price
// component of the plan and collects the results into a draft invoice.
// Fixed components (flat, subscription) always contribute exactly one line
// item even with zero usage events.
func (s *InvoiceGenerationService) assembleInvoice(ctx context.Context, sub *billing.Subscription, plan *catalog.Plan, window billing.Period) (*invoicing.Invoice, error) {
	totals, err := s.usageEventRepo.SumByMetric(ctx, sub.CustomerID,
		billing.UsageEventFilter{}.WithTimeRange(window.Start, window.End))
	if err != nil {
		return nil, err
	}

	issueDate := time.Now()
	invoice, err := invoicing.NewInvoice(sub.CustomerID, issueDate,
		issueDate.AddDate(0, 0, s.config.PaymentTermDays),
		fmt.Sprintf("Invoice for usage from %s", window))
	if err != nil {
		return nil, err
	}
	invoice.ForSubscription(sub.ID)

	for _, component := range plan.PriceComponents {
		quantity := decimal.Zero
		if component.Pricing.Type.IsUsageDriven() {
			quantity = totals.Quantity(component.MetricName)
		}

		result, err := s.evaluator.Evaluate(component, quantity)
		if err != nil {
			return nil, err
		}
		for _, line := range result.LineItems {
			item, err := invoicing.NewInvoiceItem(line.Description, line.Quantity, &line.UnitPrice, line.Amount)
			if err != nil {
				return nil, err
			}
			item.MetricName = line.MetricName
			if err := invoice.AddItem(item); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Debug("assembled draft invoice",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("customer_id", sub.CustomerID.String()),
		zap.String("amount", invoice.Amount.String()))
	return invoice, nil
}
