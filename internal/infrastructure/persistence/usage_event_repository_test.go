package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, customerID uuid.UUID, metric string, quantity string, at time.Time) *billing.UsageEvent {
	t.Helper()
	event, err := billing.NewUsageEvent(customerID, metric, decimal.RequireFromString(quantity), at)
	require.NoError(t, err)
	return event
}

func TestGormUsageEventRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageEventRepository(db)
	ctx := context.Background()

	t.Run("saves and reloads an event with properties", func(t *testing.T) {
		customerID := uuid.New()
		at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		event := newEvent(t, customerID, "api_calls", "100", at)
		event.WithProperty("region", "eu-west-1")

		require.NoError(t, repo.Save(ctx, event))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, found.ID)
		assert.Equal(t, customerID, found.CustomerID)
		assert.Equal(t, "api_calls", found.MetricName)
		assert.True(t, found.Quantity.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "eu-west-1", found.Properties["region"])
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUsageEventRepository_SaveBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageEventRepository(db)
	ctx := context.Background()

	t.Run("saves multiple events", func(t *testing.T) {
		customerID := uuid.New()
		at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		events := []*billing.UsageEvent{
			newEvent(t, customerID, "api_calls", "10", at),
			newEvent(t, customerID, "api_calls", "20", at.Add(time.Hour)),
			newEvent(t, customerID, "storage_gb", "5", at),
		}
		require.NoError(t, repo.SaveBatch(ctx, events))

		found, err := repo.FindByCustomer(ctx, customerID, billing.UsageEventFilter{})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("handles empty batch", func(t *testing.T) {
		require.NoError(t, repo.SaveBatch(ctx, nil))
	})
}

func TestGormUsageEventRepository_FindByCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageEventRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	otherCustomerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	events := []*billing.UsageEvent{
		newEvent(t, customerID, "api_calls", "30", base.AddDate(0, 0, 2)),
		newEvent(t, customerID, "api_calls", "10", base),
		newEvent(t, customerID, "storage_gb", "7", base.AddDate(0, 0, 1)),
		newEvent(t, otherCustomerID, "api_calls", "99", base),
	}
	require.NoError(t, repo.SaveBatch(ctx, events))

	t.Run("orders events by event time ascending", func(t *testing.T) {
		found, err := repo.FindByCustomer(ctx, customerID, billing.UsageEventFilter{})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.True(t, found[0].EventTime.Before(found[1].EventTime))
		assert.True(t, found[1].EventTime.Before(found[2].EventTime))
	})

	t.Run("filters by metric", func(t *testing.T) {
		filter := billing.UsageEventFilter{}.WithMetric("storage_gb")
		found, err := repo.FindByCustomer(ctx, customerID, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "storage_gb", found[0].MetricName)
	})

	t.Run("time range is inclusive on both ends", func(t *testing.T) {
		filter := billing.UsageEventFilter{}.WithTimeRange(base, base.AddDate(0, 0, 1))
		found, err := repo.FindByCustomer(ctx, customerID, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})
}

func TestGormUsageEventRepository_SumByMetric(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUsageEventRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	events := []*billing.UsageEvent{
		newEvent(t, customerID, "api_calls", "100", base),
		newEvent(t, customerID, "api_calls", "250", base.AddDate(0, 0, 5)),
		newEvent(t, customerID, "storage_gb", "12", base.AddDate(0, 0, 3)),
		newEvent(t, customerID, "api_calls", "1000", base.AddDate(0, 1, 5)),
	}
	require.NoError(t, repo.SaveBatch(ctx, events))

	t.Run("sums quantities per metric within the range", func(t *testing.T) {
		filter := billing.UsageEventFilter{}.WithTimeRange(base, base.AddDate(0, 1, 0))
		totals, err := repo.SumByMetric(ctx, customerID, filter)
		require.NoError(t, err)

		assert.True(t, totals.Quantity("api_calls").Equal(decimal.NewFromInt(350)))
		assert.True(t, totals.Quantity("storage_gb").Equal(decimal.NewFromInt(12)))
	})

	t.Run("negative quantities net out against positives", func(t *testing.T) {
		correction := newEvent(t, customerID, "api_calls", "-50", base.AddDate(0, 0, 6))
		require.NoError(t, repo.Save(ctx, correction))

		filter := billing.UsageEventFilter{}.WithTimeRange(base, base.AddDate(0, 1, 0))
		totals, err := repo.SumByMetric(ctx, customerID, filter)
		require.NoError(t, err)
		assert.True(t, totals.Quantity("api_calls").Equal(decimal.NewFromInt(300)))
	})

	t.Run("returns empty totals when nothing matches", func(t *testing.T) {
		totals, err := repo.SumByMetric(ctx, uuid.New(), billing.UsageEventFilter{})
		require.NoError(t, err)
		assert.Empty(t, totals.Metrics())
	})
}
