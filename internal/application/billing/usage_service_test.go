package billing

import (
	"context"
	"testing"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type usageFixture struct {
	usageEventRepo *mockUsageEventRepository
	customerRepo   *mockCustomerRepository
	cache          *mockUsageSummaryCache
	service        *UsageService
}

func newUsageFixture() *usageFixture {
	f := &usageFixture{
		usageEventRepo: new(mockUsageEventRepository),
		customerRepo:   new(mockCustomerRepository),
		cache:          new(mockUsageSummaryCache),
	}
	f.service = NewUsageService(f.usageEventRepo, f.customerRepo, f.cache, time.Minute, zap.NewNop())
	return f
}

func TestRecordUsage(t *testing.T) {
	f := newUsageFixture()
	customer := mustCustomer(t)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.usageEventRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.UsageEvent")).Return(nil)
	f.cache.On("Invalidate", mock.Anything, customer.ID).Return()

	resp, err := f.service.RecordUsage(context.Background(), RecordUsageRequest{
		CustomerID: customer.ID,
		MetricName: "api_calls",
		Quantity:   decimal.NewFromInt(42),
		EventTime:  time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC),
		Properties: map[string]any{"region": "eu-west-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "api_calls", resp.MetricName)
	assert.Equal(t, "eu-west-1", resp.Properties["region"])
	f.cache.AssertCalled(t, "Invalidate", mock.Anything, customer.ID)
}

func TestRecordUsage_UnknownCustomer(t *testing.T) {
	f := newUsageFixture()
	unknownID := uuid.New()

	f.customerRepo.On("FindByID", mock.Anything, unknownID).Return(nil, shared.ErrCustomerNotFound)

	_, err := f.service.RecordUsage(context.Background(), RecordUsageRequest{
		CustomerID: unknownID,
		MetricName: "api_calls",
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, shared.ErrCustomerNotFound)
	f.usageEventRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordUsageBatch(t *testing.T) {
	f := newUsageFixture()
	customer := mustCustomer(t)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.usageEventRepo.On("SaveBatch", mock.Anything, mock.AnythingOfType("[]*billing.UsageEvent")).Return(nil)
	f.cache.On("Invalidate", mock.Anything, customer.ID).Return()

	responses, err := f.service.RecordUsageBatch(context.Background(), []RecordUsageRequest{
		{CustomerID: customer.ID, MetricName: "api_calls", Quantity: decimal.NewFromInt(10)},
		{CustomerID: customer.ID, MetricName: "storage_gb", Quantity: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	// Customer lookup happens once per distinct customer
	f.customerRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestGetUsageSummary(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newUsageFixture()
		customer := mustCustomer(t)
		totals := billing.UsageTotals{"api_calls": decimal.NewFromInt(300)}

		f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.cache.On("Get", mock.Anything, customer.ID, start, end, "").Return(nil, false)
		f.usageEventRepo.On("SumByMetric", mock.Anything, customer.ID, mock.Anything).Return(totals, nil)
		f.cache.On("Set", mock.Anything, customer.ID, start, end, "", totals, time.Minute).Return()

		got, err := f.service.GetUsageSummary(context.Background(), customer.ID, start, end, "")
		require.NoError(t, err)
		assert.True(t, got.Quantity("api_calls").Equal(decimal.NewFromInt(300)))
		f.cache.AssertCalled(t, "Set", mock.Anything, customer.ID, start, end, "", totals, time.Minute)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newUsageFixture()
		customer := mustCustomer(t)
		totals := billing.UsageTotals{"api_calls": decimal.NewFromInt(300)}

		f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.cache.On("Get", mock.Anything, customer.ID, start, end, "").Return(totals, true)

		got, err := f.service.GetUsageSummary(context.Background(), customer.ID, start, end, "")
		require.NoError(t, err)
		assert.True(t, got.Quantity("api_calls").Equal(decimal.NewFromInt(300)))
		f.usageEventRepo.AssertNotCalled(t, "SumByMetric", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("metric filter is forwarded", func(t *testing.T) {
		f := newUsageFixture()
		customer := mustCustomer(t)

		f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.cache.On("Get", mock.Anything, customer.ID, start, end, "api_calls").Return(nil, false)
		f.cache.On("Set", mock.Anything, customer.ID, start, end, "api_calls", mock.Anything, time.Minute).Return()

		var captured billing.UsageEventFilter
		f.usageEventRepo.On("SumByMetric", mock.Anything, customer.ID, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(billing.UsageEventFilter)
			}).
			Return(billing.UsageTotals{}, nil)

		_, err := f.service.GetUsageSummary(context.Background(), customer.ID, start, end, "api_calls")
		require.NoError(t, err)
		assert.Equal(t, "api_calls", captured.MetricName)
	})
}

func TestListEvents(t *testing.T) {
	f := newUsageFixture()
	customer := mustCustomer(t)

	event, err := billing.NewUsageEvent(customer.ID, "api_calls", decimal.NewFromInt(5),
		time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.usageEventRepo.On("FindByCustomer", mock.Anything, customer.ID, mock.Anything).
		Return([]*billing.UsageEvent{event}, nil)

	responses, err := f.service.ListEvents(context.Background(), customer.ID,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, event.ID, responses[0].ID)
}
