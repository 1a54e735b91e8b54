package billing

import (
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageEvent represents an immutable record of a single usage event.
// Once created, usage events cannot be modified - corrections must be made
// with new events. Negative quantities are accepted and flow through to
// aggregation unmodified; they act as manual adjustments.
type UsageEvent struct {
	shared.BaseEntity
	CustomerID uuid.UUID       // The customer this usage belongs to
	MetricName string          // Named unit of consumption, e.g. "api_calls"
	Quantity   decimal.Decimal // Amount of usage
	EventTime  time.Time       // When the usage occurred
	Properties Properties      // Free-form context, not interpreted by the engine
}

// Properties holds additional context about a usage event
type Properties map[string]any

// NewUsageEvent creates a new usage event with validation
func NewUsageEvent(customerID uuid.UUID, metricName string, quantity decimal.Decimal, eventTime time.Time) (*UsageEvent, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}
	if metricName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Metric name cannot be empty")
	}
	if eventTime.IsZero() {
		eventTime = time.Now()
	}
	return &UsageEvent{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		MetricName: metricName,
		Quantity:   quantity,
		EventTime:  eventTime,
		Properties: make(Properties),
	}, nil
}

// WithProperty adds a property to the usage event
func (e *UsageEvent) WithProperty(key string, value any) *UsageEvent {
	if e.Properties == nil {
		e.Properties = make(Properties)
	}
	e.Properties[key] = value
	return e
}

// OccurredWithin returns true if the event time falls within the period
func (e *UsageEvent) OccurredWithin(period Period) bool {
	return period.Covers(e.EventTime)
}
