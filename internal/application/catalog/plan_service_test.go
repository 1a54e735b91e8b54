package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) Save(ctx context.Context, plan *catalog.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *mockPlanRepository) FindActive(ctx context.Context) ([]*catalog.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Plan), args.Error(1)
}

func (m *mockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newService(repo *mockPlanRepository) *PlanService {
	return NewPlanService(repo, zap.NewNop())
}

func TestPlanService_Create(t *testing.T) {
	t.Run("creates a plan with validated components", func(t *testing.T) {
		repo := new(mockPlanRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Plan")).Return(nil)

		resp, err := newService(repo).Create(context.Background(), CreatePlanRequest{
			Name:             "Team",
			BillingFrequency: "monthly",
			Components: []CreateComponentRequest{
				{
					MetricName:     "api_calls",
					DisplayName:    "API Calls",
					PricingType:    "flat",
					PricingDetails: json.RawMessage(`{"amount": "25"}`),
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Team", resp.Name)
		assert.Equal(t, "monthly", resp.BillingFrequency)
		require.Len(t, resp.Components, 1)
		assert.Equal(t, "flat", resp.Components[0].PricingType)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a malformed pricing config", func(t *testing.T) {
		repo := new(mockPlanRepository)

		_, err := newService(repo).Create(context.Background(), CreatePlanRequest{
			Name:             "Team",
			BillingFrequency: "monthly",
			Components: []CreateComponentRequest{
				{
					MetricName:     "api_calls",
					PricingType:    "tiered",
					PricingDetails: json.RawMessage(`{"tiers": []}`),
				},
			},
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown pricing type", func(t *testing.T) {
		repo := new(mockPlanRepository)

		_, err := newService(repo).Create(context.Background(), CreatePlanRequest{
			Name:             "Team",
			BillingFrequency: "monthly",
			Components: []CreateComponentRequest{
				{
					MetricName:     "api_calls",
					PricingType:    "surge",
					PricingDetails: json.RawMessage(`{}`),
				},
			},
		})
		assert.Error(t, err)
	})

	t.Run("rejects an invalid billing frequency", func(t *testing.T) {
		repo := new(mockPlanRepository)
		_, err := newService(repo).Create(context.Background(), CreatePlanRequest{
			Name:             "Team",
			BillingFrequency: "weekly",
		})
		assert.Error(t, err)
	})
}

func TestPlanService_Deactivate(t *testing.T) {
	plan, err := catalog.NewPlan("Team", "", catalog.BillingFrequencyMonthly)
	require.NoError(t, err)

	repo := new(mockPlanRepository)
	repo.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)
	repo.On("Save", mock.Anything, plan).Return(nil)

	resp, err := newService(repo).Deactivate(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	repo.AssertExpectations(t)
}

func TestPlanService_ListActive(t *testing.T) {
	first, err := catalog.NewPlan("Starter", "", catalog.BillingFrequencyMonthly)
	require.NoError(t, err)
	second, err := catalog.NewPlan("Team", "", catalog.BillingFrequencyYearly)
	require.NoError(t, err)

	repo := new(mockPlanRepository)
	repo.On("FindActive", mock.Anything).Return([]*catalog.Plan{first, second}, nil)

	resp, err := newService(repo).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Starter", resp[0].Name)
	assert.Equal(t, "yearly", resp[1].BillingFrequency)
}
