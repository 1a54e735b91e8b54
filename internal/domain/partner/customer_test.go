package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates an active customer", func(t *testing.T) {
		customer, err := NewCustomer("Acme Corp", "Billing@Acme.example", "Acme")
		require.NoError(t, err)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Equal(t, "billing@acme.example", customer.Email)
		assert.True(t, customer.IsActive())
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := NewCustomer("", "billing@acme.example", "")
		assert.Error(t, err)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := NewCustomer("Acme Corp", "not-an-email", "")
		assert.Error(t, err)
	})
}

func TestCustomer_Update(t *testing.T) {
	customer, err := NewCustomer("Acme Corp", "billing@acme.example", "Acme")
	require.NoError(t, err)

	require.NoError(t, customer.Update("Acme Inc", "finance@acme.example", "Acme"))
	assert.Equal(t, "Acme Inc", customer.Name)
	assert.Equal(t, "finance@acme.example", customer.Email)

	assert.Error(t, customer.Update("Acme Inc", "broken", "Acme"))
}

func TestCustomer_Deactivate(t *testing.T) {
	customer, err := NewCustomer("Acme Corp", "billing@acme.example", "Acme")
	require.NoError(t, err)
	customer.ClearDomainEvents()

	customer.Deactivate()
	assert.False(t, customer.IsActive())
	assert.Len(t, customer.GetDomainEvents(), 1)

	// Idempotent
	customer.Deactivate()
	assert.Len(t, customer.GetDomainEvents(), 1)
}
