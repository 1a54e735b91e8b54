package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UsageEventFilter defines filtering options for usage event queries.
// Both ends of the time range are inclusive.
type UsageEventFilter struct {
	StartTime  *time.Time // Filter events from this time
	EndTime    *time.Time // Filter events until this time
	MetricName string     // Filter by a single metric, empty matches all
}

// WithTimeRange sets the time range for the filter
func (f UsageEventFilter) WithTimeRange(start, end time.Time) UsageEventFilter {
	f.StartTime = &start
	f.EndTime = &end
	return f
}

// WithMetric sets the metric name filter
func (f UsageEventFilter) WithMetric(metricName string) UsageEventFilter {
	f.MetricName = metricName
	return f
}

// UsageEventRepository defines the interface for persisting and querying usage events
type UsageEventRepository interface {
	// Save persists a new usage event
	Save(ctx context.Context, event *UsageEvent) error

	// SaveBatch persists multiple usage events in a single transaction
	SaveBatch(ctx context.Context, events []*UsageEvent) error

	// FindByID retrieves a usage event by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*UsageEvent, error)

	// FindByCustomer retrieves matching events ordered by event time ascending
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter UsageEventFilter) ([]*UsageEvent, error)

	// SumByMetric aggregates matching event quantities grouped by metric name
	SumByMetric(ctx context.Context, customerID uuid.UUID, filter UsageEventFilter) (UsageTotals, error)
}

// SubscriptionRepository defines the interface for persisting and querying subscriptions
type SubscriptionRepository interface {
	// Save persists a subscription
	Save(ctx context.Context, sub *Subscription) error

	// FindByID retrieves a subscription by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByCustomer retrieves all subscriptions for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Subscription, error)

	// FindOverlapping retrieves the customer's subscriptions whose active
	// interval intersects the period
	FindOverlapping(ctx context.Context, customerID uuid.UUID, period Period) ([]*Subscription, error)

	// CustomerIDsWithSubscriptions lists the distinct customers holding at
	// least one subscription overlapping the period
	CustomerIDsWithSubscriptions(ctx context.Context, period Period) ([]uuid.UUID, error)
}
