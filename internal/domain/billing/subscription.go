package billing

import (
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Subscription links one customer to one plan over a half-open time interval
// [StartDate, EndDate). A nil EndDate means the subscription is open-ended.
// The engine assumes at most one subscription covers any given instant per
// customer but does not enforce it; overlapping subscriptions are each
// billed independently.
type Subscription struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	PlanID     uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   bool
}

// NewSubscription creates a new subscription
func NewSubscription(customerID, planID uuid.UUID, startDate time.Time, endDate *time.Time) (*Subscription, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Plan ID cannot be empty")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Subscription end date must be after its start date")
	}

	sub := &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PlanID:            planID,
		StartDate:         startDate,
		EndDate:           endDate,
		IsActive:          true,
	}
	sub.AddDomainEvent(NewSubscriptionCreatedEvent(sub))
	return sub, nil
}

// IsActiveAt returns true if the instant falls within [StartDate, EndDate)
func (s *Subscription) IsActiveAt(t time.Time) bool {
	if t.Before(s.StartDate) {
		return false
	}
	return s.EndDate == nil || t.Before(*s.EndDate)
}

// Overlaps returns true if the subscription's active interval intersects the period
func (s *Subscription) Overlaps(period Period) bool {
	if s.StartDate.After(period.End) {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(period.Start)
}

// EffectiveWindow intersects the subscription's active interval with the
// period. ok is false when the two do not overlap at all.
func (s *Subscription) EffectiveWindow(period Period) (Period, bool) {
	if !s.Overlaps(period) {
		return Period{}, false
	}
	window := period
	if s.StartDate.After(window.Start) {
		window.Start = s.StartDate
	}
	if s.EndDate != nil && s.EndDate.Before(window.End) {
		window.End = *s.EndDate
	}
	return window, true
}

// Cancel closes the subscription at the given time
func (s *Subscription) Cancel(at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(s.StartDate) {
		return shared.NewDomainError("INVALID_INPUT", "Cannot cancel a subscription before its start date")
	}
	s.EndDate = &at
	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSubscriptionCancelledEvent(s))
	return nil
}

// SubscriptionWindow pairs a subscription with its effective billing window
type SubscriptionWindow struct {
	Subscription *Subscription
	Window       Period
}

// ResolveBillingWindows returns the subscriptions active during the period,
// each paired with the intersection of the period and its active interval.
// An empty result is not an error; callers skip invoice generation for the
// customer. Overlapping subscriptions each yield an independent window.
func ResolveBillingWindows(subscriptions []*Subscription, period Period) []SubscriptionWindow {
	windows := make([]SubscriptionWindow, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if window, ok := sub.EffectiveWindow(period); ok {
			windows = append(windows, SubscriptionWindow{Subscription: sub, Window: window})
		}
	}
	return windows
}
