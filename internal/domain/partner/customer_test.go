package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid name", func(t *testing.T) {
		customer, err := NewCustomer("Addis Pharmacy")
		require.NoError(t, err)

		assert.Equal(t, "Addis Pharmacy", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.NotEmpty(t, customer.ID)
		require.Len(t, customer.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCustomerCreated, customer.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("")
		require.Error(t, err)
	})
}

func TestCustomer_SetContact(t *testing.T) {
	customer, err := NewCustomer("Addis Pharmacy")
	require.NoError(t, err)

	t.Run("accepts valid contact info", func(t *testing.T) {
		require.NoError(t, customer.SetContact("+251 911 123456", "orders@addispharm.example"))
		assert.Equal(t, "+251 911 123456", customer.Phone)
		assert.Equal(t, "orders@addispharm.example", customer.Email)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		assert.Error(t, customer.SetContact("phone#1", ""))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, customer.SetContact("", "not-an-email"))
	})

	t.Run("allows clearing contact info", func(t *testing.T) {
		require.NoError(t, customer.SetContact("", ""))
		assert.Empty(t, customer.Phone)
		assert.Empty(t, customer.Email)
	})
}

func TestCustomer_StatusTransitions(t *testing.T) {
	customer, err := NewCustomer("Addis Pharmacy")
	require.NoError(t, err)

	assert.Error(t, customer.Activate())

	require.NoError(t, customer.Deactivate())
	assert.False(t, customer.IsActive())
	assert.Error(t, customer.Deactivate())

	require.NoError(t, customer.Activate())
	assert.True(t, customer.IsActive())
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with valid name", func(t *testing.T) {
		supplier, err := NewSupplier("EthioPharm Wholesale")
		require.NoError(t, err)

		assert.Equal(t, "EthioPharm Wholesale", supplier.Name)
		assert.Equal(t, SupplierStatusActive, supplier.Status)
		require.Len(t, supplier.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeSupplierCreated, supplier.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewSupplier("")
		require.Error(t, err)
	})
}

func TestSupplier_SetContact(t *testing.T) {
	supplier, err := NewSupplier("EthioPharm Wholesale")
	require.NoError(t, err)

	require.NoError(t, supplier.SetContact("Sara Bekele", "+251 911 654321", "sales@ethiopharm.example"))
	assert.Equal(t, "Sara Bekele", supplier.ContactName)

	assert.Error(t, supplier.SetContact("", "bad#phone", ""))
}
