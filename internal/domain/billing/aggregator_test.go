package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, metric string, quantity int64) *UsageEvent {
	t.Helper()
	event, err := NewUsageEvent(uuid.New(), metric, decimal.NewFromInt(quantity), date(2026, 4, 10))
	require.NoError(t, err)
	return event
}

func TestAggregateEvents(t *testing.T) {
	t.Run("sums quantities per metric", func(t *testing.T) {
		totals := AggregateEvents([]*UsageEvent{
			mustEvent(t, "api_calls", 100),
			mustEvent(t, "api_calls", 250),
			mustEvent(t, "storage_gb", 12),
		})
		assert.True(t, totals.Quantity("api_calls").Equal(decimal.NewFromInt(350)))
		assert.True(t, totals.Quantity("storage_gb").Equal(decimal.NewFromInt(12)))
	})

	t.Run("negative quantities reduce the total", func(t *testing.T) {
		totals := AggregateEvents([]*UsageEvent{
			mustEvent(t, "api_calls", 100),
			mustEvent(t, "api_calls", -40),
		})
		assert.True(t, totals.Quantity("api_calls").Equal(decimal.NewFromInt(60)))
	})

	t.Run("empty input yields empty totals", func(t *testing.T) {
		totals := AggregateEvents(nil)
		assert.Empty(t, totals)
		assert.True(t, totals.Quantity("api_calls").IsZero())
	})
}

func TestUsageTotals_Metrics(t *testing.T) {
	totals := UsageTotals{
		"storage_gb": decimal.NewFromInt(1),
		"api_calls":  decimal.NewFromInt(2),
		"emails":     decimal.NewFromInt(3),
	}
	assert.Equal(t, []string{"api_calls", "emails", "storage_gb"}, totals.Metrics())
}

func TestNewPeriod(t *testing.T) {
	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewPeriod(date(2026, 4, 30), date(2026, 4, 1))
		assert.Error(t, err)
	})

	t.Run("single-day period is valid", func(t *testing.T) {
		p, err := NewPeriod(date(2026, 4, 1), date(2026, 4, 1))
		require.NoError(t, err)
		assert.True(t, p.Covers(date(2026, 4, 1)))
	})
}

func TestPeriod_Covers(t *testing.T) {
	p := mustPeriod(t, date(2026, 4, 1), date(2026, 4, 30))

	// Both boundaries are inclusive
	assert.True(t, p.Covers(date(2026, 4, 1)))
	assert.True(t, p.Covers(date(2026, 4, 30)))
	assert.True(t, p.Covers(date(2026, 4, 15)))
	assert.False(t, p.Covers(date(2026, 3, 31)))
	assert.False(t, p.Covers(date(2026, 5, 1)))
}

func TestUsageEvent_OccurredWithin(t *testing.T) {
	p := mustPeriod(t, date(2026, 4, 1), date(2026, 4, 30))

	event, err := NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(1), date(2026, 4, 30))
	require.NoError(t, err)
	assert.True(t, event.OccurredWithin(p))

	event, err = NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(1), date(2026, 5, 1))
	require.NoError(t, err)
	assert.False(t, event.OccurredWithin(p))
}

func TestNewUsageEvent_Validation(t *testing.T) {
	_, err := NewUsageEvent(uuid.Nil, "api_calls", decimal.NewFromInt(1), date(2026, 4, 1))
	assert.Error(t, err)

	_, err = NewUsageEvent(uuid.New(), "", decimal.NewFromInt(1), date(2026, 4, 1))
	assert.Error(t, err)

	// Zero event time defaults to now
	event, err := NewUsageEvent(uuid.New(), "api_calls", decimal.NewFromInt(1), time.Time{})
	require.NoError(t, err)
	assert.False(t, event.EventTime.IsZero())
}
