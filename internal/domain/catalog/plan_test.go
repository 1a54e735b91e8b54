package catalog

import (
	"testing"
	"time"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan("Starter", "Entry plan", BillingFrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, "Starter", plan.Name)
	assert.True(t, plan.IsActive)
	assert.Empty(t, plan.PriceComponents)

	_, err = NewPlan("", "", BillingFrequencyMonthly)
	assertDomainCode(t, err, "INVALID_INPUT")

	_, err = NewPlan("Starter", "", "weekly")
	assertDomainCode(t, err, "INVALID_INPUT")
}

func TestPlan_AddComponent(t *testing.T) {
	plan, err := NewPlan("Pro", "", BillingFrequencyMonthly)
	require.NoError(t, err)

	component, err := plan.AddComponent("api_calls", "API Calls", NewUsageBasedSubscriptionConfig(dec(20), dec(0.5)))
	require.NoError(t, err)
	assert.Equal(t, plan.ID, component.PlanID)
	assert.Equal(t, 0, component.SortOrder)

	second, err := plan.AddComponent("", "Base Fee", NewSubscriptionConfig(dec(99)))
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
	assert.Len(t, plan.PriceComponents, 2)
}

func TestPlan_AddComponent_RequiresMetricForUsageDriven(t *testing.T) {
	plan, err := NewPlan("Pro", "", BillingFrequencyMonthly)
	require.NoError(t, err)

	cfg, err := NewPackageConfig(dec(1000), dec(9.99))
	require.NoError(t, err)

	_, err = plan.AddComponent("", "Packages", cfg)
	assertDomainCode(t, err, "INVALID_INPUT")
}

func TestPlan_ComponentForMetric(t *testing.T) {
	plan, err := NewPlan("Pro", "", BillingFrequencyMonthly)
	require.NoError(t, err)

	_, err = plan.AddComponent("api_calls", "API Calls", NewFlatConfig(dec(10)))
	require.NoError(t, err)

	assert.NotNil(t, plan.ComponentForMetric("api_calls"))
	assert.Nil(t, plan.ComponentForMetric("storage_gb"))
}

func TestBillingFrequency_PeriodStart(t *testing.T) {
	end := mustTime(t, "2025-04-15T00:00:00Z")

	assert.Equal(t, mustTime(t, "2025-03-15T00:00:00Z"), BillingFrequencyMonthly.PeriodStart(end))
	assert.Equal(t, mustTime(t, "2025-01-15T00:00:00Z"), BillingFrequencyQuarterly.PeriodStart(end))
	assert.Equal(t, mustTime(t, "2024-04-15T00:00:00Z"), BillingFrequencyYearly.PeriodStart(end))
}
