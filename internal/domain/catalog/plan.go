package catalog

import (
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BillingFrequency determines the default billing period length for a plan
type BillingFrequency string

const (
	BillingFrequencyMonthly   BillingFrequency = "monthly"
	BillingFrequencyQuarterly BillingFrequency = "quarterly"
	BillingFrequencyYearly    BillingFrequency = "yearly"
)

// String returns the string representation of the billing frequency
func (f BillingFrequency) String() string {
	return string(f)
}

// IsValid returns true if the billing frequency is valid
func (f BillingFrequency) IsValid() bool {
	switch f {
	case BillingFrequencyMonthly, BillingFrequencyQuarterly, BillingFrequencyYearly:
		return true
	}
	return false
}

// PeriodStart returns the start of a billing period of this frequency ending at end
func (f BillingFrequency) PeriodStart(end time.Time) time.Time {
	switch f {
	case BillingFrequencyQuarterly:
		return end.AddDate(0, -3, 0)
	case BillingFrequencyYearly:
		return end.AddDate(-1, 0, 0)
	default:
		return end.AddDate(0, -1, 0)
	}
}

// PriceComponent is one billable line within a plan, binding a metric to a
// pricing model. Components with fixed pricing (flat, subscription) charge
// once per billing period regardless of usage events.
type PriceComponent struct {
	shared.BaseEntity
	PlanID      uuid.UUID
	MetricName  string
	DisplayName string
	Pricing     PricingConfig
	SortOrder   int // Display order within the plan, not semantically significant
}

// NewPriceComponent creates a new price component with a validated pricing config
func NewPriceComponent(planID uuid.UUID, metricName, displayName string, pricing PricingConfig) (*PriceComponent, error) {
	if metricName == "" && pricing.Type.IsUsageDriven() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Usage-driven components require a metric name")
	}
	if displayName == "" {
		displayName = metricName
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	return &PriceComponent{
		BaseEntity:  shared.NewBaseEntity(),
		PlanID:      planID,
		MetricName:  metricName,
		DisplayName: displayName,
		Pricing:     pricing,
	}, nil
}

// Plan owns an ordered collection of price components and a billing frequency
type Plan struct {
	shared.BaseAggregateRoot
	Name            string
	Description     string
	Frequency       BillingFrequency
	IsActive        bool
	PriceComponents []*PriceComponent
}

// NewPlan creates a new plan
func NewPlan(name, description string, frequency BillingFrequency) (*Plan, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Plan name cannot be empty")
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Billing frequency is not valid")
	}
	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Frequency:         frequency,
		IsActive:          true,
		PriceComponents:   make([]*PriceComponent, 0),
	}, nil
}

// AddComponent appends a price component to the plan
func (p *Plan) AddComponent(metricName, displayName string, pricing PricingConfig) (*PriceComponent, error) {
	component, err := NewPriceComponent(p.ID, metricName, displayName, pricing)
	if err != nil {
		return nil, err
	}
	component.SortOrder = len(p.PriceComponents)
	p.PriceComponents = append(p.PriceComponents, component)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return component, nil
}

// Deactivate marks the plan as unavailable for new subscriptions
func (p *Plan) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ComponentForMetric returns the first component bound to the metric name
func (p *Plan) ComponentForMetric(metricName string) *PriceComponent {
	for _, c := range p.PriceComponents {
		if c.MetricName == metricName {
			return c
		}
	}
	return nil
}
