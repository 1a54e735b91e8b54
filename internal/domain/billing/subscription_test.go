package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func mustPeriod(t *testing.T, start, end time.Time) Period {
	t.Helper()
	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

func TestNewSubscription(t *testing.T) {
	t.Run("creates an open-ended subscription", func(t *testing.T) {
		sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 1, 1), nil)
		require.NoError(t, err)
		assert.Nil(t, sub.EndDate)
		assert.True(t, sub.IsActive)
		assert.Len(t, sub.GetDomainEvents(), 1)
	})

	t.Run("rejects an empty customer", func(t *testing.T) {
		_, err := NewSubscription(uuid.Nil, uuid.New(), date(2026, 1, 1), nil)
		assert.Error(t, err)
	})

	t.Run("rejects an end date before the start", func(t *testing.T) {
		_, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 3, 1), datePtr(2026, 2, 1))
		assert.Error(t, err)
	})
}

func TestSubscription_IsActiveAt(t *testing.T) {
	sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 1, 1), datePtr(2026, 4, 1))
	require.NoError(t, err)

	assert.False(t, sub.IsActiveAt(date(2025, 12, 31)))
	assert.True(t, sub.IsActiveAt(date(2026, 1, 1)))
	assert.True(t, sub.IsActiveAt(date(2026, 3, 31)))
	// End date is exclusive
	assert.False(t, sub.IsActiveAt(date(2026, 4, 1)))
}

func TestSubscription_EffectiveWindow(t *testing.T) {
	period := func(t *testing.T) Period {
		return mustPeriod(t, date(2026, 2, 1), date(2026, 2, 28))
	}

	t.Run("open-ended subscription yields the full period", func(t *testing.T) {
		sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 1, 1), nil)
		require.NoError(t, err)

		window, ok := sub.EffectiveWindow(period(t))
		require.True(t, ok)
		assert.Equal(t, date(2026, 2, 1), window.Start)
		assert.Equal(t, date(2026, 2, 28), window.End)
	})

	t.Run("late start clips the window", func(t *testing.T) {
		sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 2, 15), nil)
		require.NoError(t, err)

		window, ok := sub.EffectiveWindow(period(t))
		require.True(t, ok)
		assert.Equal(t, date(2026, 2, 15), window.Start)
		assert.Equal(t, date(2026, 2, 28), window.End)
	})

	t.Run("early end clips the window", func(t *testing.T) {
		sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 1, 1), datePtr(2026, 2, 10))
		require.NoError(t, err)

		window, ok := sub.EffectiveWindow(period(t))
		require.True(t, ok)
		assert.Equal(t, date(2026, 2, 1), window.Start)
		assert.Equal(t, date(2026, 2, 10), window.End)
	})

	t.Run("no overlap yields no window", func(t *testing.T) {
		sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 5, 1), nil)
		require.NoError(t, err)

		_, ok := sub.EffectiveWindow(period(t))
		assert.False(t, ok)

		ended, err := NewSubscription(uuid.New(), uuid.New(), date(2025, 1, 1), datePtr(2026, 1, 15))
		require.NoError(t, err)
		_, ok = ended.EffectiveWindow(period(t))
		assert.False(t, ok)
	})
}

func TestResolveBillingWindows(t *testing.T) {
	period := mustPeriod(t, date(2026, 2, 1), date(2026, 2, 28))
	customerID := uuid.New()

	active, err := NewSubscription(customerID, uuid.New(), date(2026, 1, 1), nil)
	require.NoError(t, err)
	expired, err := NewSubscription(customerID, uuid.New(), date(2025, 1, 1), datePtr(2025, 6, 1))
	require.NoError(t, err)
	// Overlapping subscriptions are billed independently
	overlapping, err := NewSubscription(customerID, uuid.New(), date(2026, 2, 10), nil)
	require.NoError(t, err)

	windows := ResolveBillingWindows([]*Subscription{active, expired, overlapping}, period)
	require.Len(t, windows, 2)
	assert.Equal(t, active.ID, windows[0].Subscription.ID)
	assert.Equal(t, overlapping.ID, windows[1].Subscription.ID)
	assert.Equal(t, date(2026, 2, 10), windows[1].Window.Start)
}

func TestSubscription_Cancel(t *testing.T) {
	sub, err := NewSubscription(uuid.New(), uuid.New(), date(2026, 1, 1), nil)
	require.NoError(t, err)

	require.NoError(t, sub.Cancel(date(2026, 6, 1)))
	assert.False(t, sub.IsActive)
	require.NotNil(t, sub.EndDate)
	assert.Equal(t, date(2026, 6, 1), *sub.EndDate)

	assert.Error(t, sub.Cancel(date(2025, 1, 1)))
}

func TestNewUsageEvent(t *testing.T) {
	t.Run("creates an event", func(t *testing.T) {
		event, err := NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(10), date(2026, 2, 5))
		require.NoError(t, err)
		assert.Equal(t, "api_calls", event.MetricName)
		event.WithProperty("region", "eu-west-1")
		assert.Equal(t, "eu-west-1", event.Properties["region"])
	})

	t.Run("defaults a zero event time to now", func(t *testing.T) {
		event, err := NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(1), time.Time{})
		require.NoError(t, err)
		assert.False(t, event.EventTime.IsZero())
	})

	t.Run("rejects a missing metric name", func(t *testing.T) {
		_, err := NewUsageEvent(uuid.New(), "", decimal.NewFromInt(1), date(2026, 2, 5))
		assert.Error(t, err)
	})

	t.Run("accepts negative quantities", func(t *testing.T) {
		event, err := NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(-5), date(2026, 2, 5))
		require.NoError(t, err)
		assert.True(t, event.Quantity.IsNegative())
	})
}

func TestPeriod(t *testing.T) {
	period := mustPeriod(t, date(2026, 2, 1), date(2026, 2, 28))

	// Inclusive on both ends
	assert.True(t, period.Covers(date(2026, 2, 1)))
	assert.True(t, period.Covers(date(2026, 2, 28)))
	assert.False(t, period.Covers(date(2026, 3, 1)))

	_, err := NewPeriod(date(2026, 3, 1), date(2026, 2, 1))
	assert.Error(t, err)

	assert.Equal(t, "2026-02-01 to 2026-02-28", period.String())
}

func TestAggregateEventsTotals(t *testing.T) {
	customerID := uuid.New()
	mustEvent := func(metric string, quantity int64) *UsageEvent {
		event, err := NewUsageEvent(customerID, metric, decimal.NewFromInt(quantity), date(2026, 2, 5))
		require.NoError(t, err)
		return event
	}

	totals := AggregateEvents([]*UsageEvent{
		mustEvent("api_calls", 100),
		mustEvent("api_calls", 250),
		mustEvent("storage_gb", 5),
		mustEvent("api_calls", -50),
	})

	assert.True(t, totals.Quantity("api_calls").Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.Quantity("storage_gb").Equal(decimal.NewFromInt(5)))
	assert.True(t, totals.Quantity("unknown").IsZero())
	assert.Equal(t, []string{"api_calls", "storage_gb"}, totals.Metrics())

	assert.Empty(t, AggregateEvents(nil))
}
