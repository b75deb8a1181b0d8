package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Amoxicillin 500mg", product.Name)
		assert.Equal(t, valueobject.PackageUnitBox, product.PackageUnit)
		assert.True(t, product.UnitPrice.IsZero())
		assert.True(t, product.SupplierPrice.IsZero())
		assert.True(t, product.StockQuantity.IsZero())
		assert.True(t, product.ReorderLevel.IsZero())
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Nil(t, product.CategoryID)
		assert.Nil(t, product.SupplierID)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Ibuprofen 200mg", valueobject.PackageUnitPack)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Name, event.Name)
		assert.Equal(t, "pack", event.Unit)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", valueobject.PackageUnitBox)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid package unit", func(t *testing.T) {
		_, err := NewProduct("Paracetamol", valueobject.PackageUnit("crate"))
		require.Error(t, err)
	})
}

func TestNewProductWithPrices(t *testing.T) {
	t.Run("creates product with prices", func(t *testing.T) {
		product, err := NewProductWithPrices(
			"Amoxicillin 500mg", valueobject.PackageUnitBox,
			valueobject.NewMoneyUSDFromFloat(3.50),
			valueobject.NewMoneyUSDFromFloat(5.00),
		)
		require.NoError(t, err)

		assert.True(t, product.SupplierPrice.Equal(decimal.NewFromFloat(3.50)))
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromFloat(5.00)))
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProductWithPrices(
			"Amoxicillin 500mg", valueobject.PackageUnitBox,
			valueobject.NewMoneyUSDFromFloat(-1),
			valueobject.NewMoneyUSDFromFloat(5.00),
		)
		require.Error(t, err)
	})
}

func TestProduct_SetStockQuantity(t *testing.T) {
	product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("replaces on-hand quantity", func(t *testing.T) {
		require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(10)))
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(10)))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductStockAdjusted, events[0].EventType())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		err := product.SetStockQuantity(decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(10)))
	})
}

func TestProduct_HasSufficientStock(t *testing.T) {
	product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(10)))

	assert.True(t, product.HasSufficientStock(decimal.NewFromInt(4)))
	assert.True(t, product.HasSufficientStock(decimal.NewFromInt(10)))
	assert.False(t, product.HasSufficientStock(decimal.NewFromInt(11)))
}

func TestProduct_IsBelowReorderLevel(t *testing.T) {
	product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
	require.NoError(t, err)

	t.Run("no threshold means no alert", func(t *testing.T) {
		require.NoError(t, product.SetStockQuantity(decimal.Zero))
		assert.False(t, product.IsBelowReorderLevel())
	})

	t.Run("at or under threshold alerts", func(t *testing.T) {
		require.NoError(t, product.SetReorderLevel(decimal.NewFromInt(5)))

		require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(6)))
		assert.False(t, product.IsBelowReorderLevel())

		require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(5)))
		assert.True(t, product.IsBelowReorderLevel())

		require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(2)))
		assert.True(t, product.IsBelowReorderLevel())
	})
}

func TestProduct_SetBatch(t *testing.T) {
	product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
	require.NoError(t, err)

	expiry := time.Now().AddDate(1, 0, 0)
	require.NoError(t, product.SetBatch("BATCH-2026-09", &expiry))
	assert.Equal(t, "BATCH-2026-09", product.BatchNumber)
	assert.False(t, product.IsExpired())

	past := time.Now().AddDate(0, -1, 0)
	require.NoError(t, product.SetBatch("BATCH-2026-07", &past))
	assert.True(t, product.IsExpired())
}

func TestProduct_StatusTransitions(t *testing.T) {
	t.Run("deactivate and reactivate", func(t *testing.T) {
		product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
		require.NoError(t, err)

		require.NoError(t, product.Deactivate())
		assert.Equal(t, ProductStatusInactive, product.Status)
		assert.Error(t, product.Deactivate())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("discontinued is final", func(t *testing.T) {
		product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
		require.NoError(t, err)

		require.NoError(t, product.Discontinue())
		assert.True(t, product.IsDiscontinued())
		assert.Error(t, product.Activate())
		assert.Error(t, product.Deactivate())
		assert.Error(t, product.Discontinue())
	})
}

func TestProduct_GetProfitMargin(t *testing.T) {
	product, err := NewProductWithPrices(
		"Amoxicillin 500mg", valueobject.PackageUnitBox,
		valueobject.NewMoneyUSDFromFloat(4.00),
		valueobject.NewMoneyUSDFromFloat(5.00),
	)
	require.NoError(t, err)

	assert.True(t, product.GetProfitMargin().Equal(decimal.NewFromInt(25)))
}

func TestProduct_SetCategory(t *testing.T) {
	product, err := NewProduct("Amoxicillin 500mg", valueobject.PackageUnitBox)
	require.NoError(t, err)

	categoryID := uuid.New()
	product.SetCategory(&categoryID)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, categoryID, *product.CategoryID)
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		category, err := NewCategory("Antibiotics", "Antibacterial medicines")
		require.NoError(t, err)

		assert.Equal(t, "Antibiotics", category.Name)
		assert.Equal(t, CategoryStatusActive, category.Status)
		require.Len(t, category.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCategoryCreated, category.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "")
		require.Error(t, err)
	})
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory("Antibiotics", "")
	require.NoError(t, err)

	require.NoError(t, category.Update("Analgesics", "Pain relief"))
	assert.Equal(t, "Analgesics", category.Name)
	assert.Equal(t, "Pain relief", category.Description)

	assert.Error(t, category.Update("", ""))
}
