package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/notification"
	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
	"github.com/pharmacare/backend/internal/domain/trade"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&partner.Customer{},
		&partner.Supplier{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
		&notification.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, stock int64) *catalog.Product {
	product, err := catalog.NewProductWithPrices(name, valueobject.PackageUnitBox,
		valueobject.NewMoneyUSDFromFloat(4.0), valueobject.NewMoneyUSDFromFloat(5.0))
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(stock)))

	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func createPersistedOrder(t *testing.T, db *gorm.DB, product *catalog.Product, qty int64) *trade.SalesOrder {
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	number, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)

	order, err := trade.NewSalesOrder(number, uuid.New(), "Walk-in Customer")
	require.NoError(t, err)

	_, err = order.AddItem(product.ID, product.Name, product.PackageUnit,
		decimal.NewFromInt(qty), product.GetUnitPriceMoney(), product.GetSupplierPriceMoney())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, order))
	return order
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) decimal.Decimal {
	product, err := NewGormProductRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.StockQuantity
}

func TestGormSalesOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Paracetamol 500mg", 100)
	order := createPersistedOrder(t, db, product, 4)

	t.Run("FindByID loads items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)

		assert.Equal(t, order.OrderNumber, found.OrderNumber)
		require.Len(t, found.Items, 1)
		assert.Equal(t, product.ID, found.Items[0].ProductID)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, trade.OrderStatusPending, found.Status)
	})

	t.Run("FindByOrderNumber", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, order.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("removed items are deleted on save", func(t *testing.T) {
		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)

		second := createTestProduct(t, db, "Ibuprofen 200mg", 50)
		_, err = found.AddItem(second.ID, second.Name, second.PackageUnit,
			decimal.NewFromInt(2), second.GetUnitPriceMoney(), second.GetSupplierPriceMoney())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, found))

		require.NoError(t, found.RemoveItem(found.Items[0].ID))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.Equal(t, second.ID, reloaded.Items[0].ProductID)
	})
}

func TestGormSalesOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	first, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^SO-\d{4}-00001$`, first)

	product := createTestProduct(t, db, "Aspirin 100mg", 10)
	createPersistedOrder(t, db, product, 1)

	second, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^SO-\d{4}-00002$`, second)
}

func TestGormSalesOrderRepository_Reservation(t *testing.T) {
	t.Run("approval decrements stock once", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSalesOrderRepository(db)
		ctx := context.Background()

		product := createTestProduct(t, db, "Amoxicillin 250mg", 100)
		order := createPersistedOrder(t, db, product, 4)

		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSDFromFloat(20)))
		require.Equal(t, trade.OrderStatusApproved, order.Status)
		require.True(t, order.NeedsReservation())

		require.NoError(t, order.MarkStockReserved())
		require.NoError(t, repo.SaveWithReservation(ctx, order))

		assert.True(t, productStock(t, db, product.ID).Equal(decimal.NewFromInt(96)))

		reloaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.StockReserved)
		assert.False(t, reloaded.NeedsReservation())
	})

	t.Run("insufficient stock rolls back everything", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSalesOrderRepository(db)
		ctx := context.Background()

		plenty := createTestProduct(t, db, "Vitamin C", 100)
		scarce := createTestProduct(t, db, "Insulin Pen", 2)

		number, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		order, err := trade.NewSalesOrder(number, uuid.New(), "Walk-in Customer")
		require.NoError(t, err)
		_, err = order.AddItem(plenty.ID, plenty.Name, plenty.PackageUnit,
			decimal.NewFromInt(10), plenty.GetUnitPriceMoney(), plenty.GetSupplierPriceMoney())
		require.NoError(t, err)
		_, err = order.AddItem(scarce.ID, scarce.Name, scarce.PackageUnit,
			decimal.NewFromInt(5), scarce.GetUnitPriceMoney(), scarce.GetSupplierPriceMoney())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, order))

		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSD(order.TotalAmount)))
		require.NoError(t, order.MarkStockReserved())

		err = repo.SaveWithReservation(ctx, order)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Insulin Pen")

		// Neither line was applied and the order row kept its old state
		assert.True(t, productStock(t, db, plenty.ID).Equal(decimal.NewFromInt(100)))
		assert.True(t, productStock(t, db, scarce.ID).Equal(decimal.NewFromInt(2)))

		reloaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.StockReserved)
		assert.Equal(t, trade.OrderStatusPending, reloaded.Status)
	})

	t.Run("restore fails wholesale when a product was deleted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSalesOrderRepository(db)
		ctx := context.Background()

		product := createTestProduct(t, db, "Simvastatin 40mg", 30)
		order := createPersistedOrder(t, db, product, 7)

		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSD(order.TotalAmount)))
		require.NoError(t, order.MarkStockReserved())
		require.NoError(t, repo.SaveWithReservation(ctx, order))

		require.NoError(t, db.Delete(&catalog.Product{}, "id = ?", product.ID).Error)

		reloaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.NoError(t, reloaded.Cancel("customer returned the goods"))
		require.NoError(t, reloaded.MarkStockRestored())

		err = repo.SaveWithRestore(ctx, reloaded)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Simvastatin 40mg")

		// The rollback leaves the order exactly as it was before the cancel
		final, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusApproved, final.Status)
		assert.True(t, final.StockReserved)
		assert.Nil(t, final.StockRestoredAt)
	})

	t.Run("cancel after reservation restores stock to net zero", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSalesOrderRepository(db)
		ctx := context.Background()

		product := createTestProduct(t, db, "Omeprazole 20mg", 30)
		order := createPersistedOrder(t, db, product, 7)

		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSD(order.TotalAmount)))
		require.NoError(t, order.MarkStockReserved())
		require.NoError(t, repo.SaveWithReservation(ctx, order))
		require.True(t, productStock(t, db, product.ID).Equal(decimal.NewFromInt(23)))

		reloaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.NoError(t, reloaded.Cancel("customer returned the goods"))
		require.True(t, reloaded.NeedsRestoration())
		require.NoError(t, reloaded.MarkStockRestored())
		require.NoError(t, repo.SaveWithRestore(ctx, reloaded))

		assert.True(t, productStock(t, db, product.ID).Equal(decimal.NewFromInt(30)))

		final, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusCancelled, final.Status)
		assert.False(t, final.NeedsRestoration())
		assert.NotNil(t, final.StockRestoredAt)
	})
}

func TestGormSalesOrderRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Cetirizine 10mg", 20)
	order := createPersistedOrder(t, db, product, 1)

	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	first.SetRemark("updated by first")
	require.NoError(t, repo.SaveWithLock(ctx, first))

	second.SetRemark("updated by second")
	err = repo.SaveWithLock(ctx, second)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
}

func TestGormSalesOrderRepository_FilterAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Metformin 500mg", 100)

	pending := createPersistedOrder(t, db, product, 1)
	approved := createPersistedOrder(t, db, product, 2)
	require.NoError(t, approved.RecordPayment(valueobject.NewMoneyUSD(approved.TotalAmount)))
	require.NoError(t, approved.MarkStockReserved())
	require.NoError(t, repo.SaveWithReservation(ctx, approved))

	t.Run("filter by status", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{"status": trade.OrderStatusApproved}}
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, approved.ID, orders[0].ID)
	})

	t.Run("filter by multiple statuses", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Filters: map[string]interface{}{
			"statuses": []trade.OrderStatus{trade.OrderStatusPending, trade.OrderStatusApproved},
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.Count(ctx, shared.Filter{Filters: map[string]interface{}{
			"statuses": []trade.OrderStatus{trade.OrderStatusCancelled, trade.OrderStatusRejected},
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("search by order number", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Search: pending.OrderNumber})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, pending.ID, orders[0].ID)
	})

	t.Run("sort by whitelisted field", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{OrderBy: "total_amount", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, approved.ID, orders[0].ID)
	})

	t.Run("hostile sort field falls back to the default", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{
			OrderBy:  "(SELECT CASE WHEN (SELECT count(*) FROM users)>0 THEN order_number ELSE customer_name END)",
			OrderDir: "desc; DROP TABLE sales_orders",
		})
		require.NoError(t, err)
		assert.Len(t, orders, 2)

		// The table survived and still answers queries
		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("count by status", func(t *testing.T) {
		count, err := repo.CountByStatus(ctx, trade.OrderStatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		total, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestGormSalesOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Loratadine 10mg", 10)
	order := createPersistedOrder(t, db, product, 1)

	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&trade.SalesOrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	assert.ErrorIs(t, repo.Delete(ctx, order.ID), shared.ErrNotFound)
}
