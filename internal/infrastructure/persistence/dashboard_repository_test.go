package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/report"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
)

func TestGormDashboardRepository_GetSummary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDashboardRepository(db)
	orderRepo := NewGormSalesOrderRepository(db)
	ctx := context.Background()

	customer, err := partner.NewCustomer("City Clinic")
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(ctx, customer))

	product := createTestProduct(t, db, "Paracetamol 500mg", 100)

	createPersistedOrder(t, db, product, 2) // $10 total, unpaid

	partial := createPersistedOrder(t, db, product, 4) // $20 total
	require.NoError(t, partial.RecordPayment(valueobject.NewMoneyUSDFromFloat(5)))
	require.NoError(t, orderRepo.SaveWithLock(ctx, partial))

	cancelled := createPersistedOrder(t, db, product, 10)
	require.NoError(t, cancelled.Cancel("duplicate entry"))
	require.NoError(t, orderRepo.SaveWithLock(ctx, cancelled))

	summary, err := repo.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.TotalProducts)
	assert.Equal(t, int64(1), summary.TotalCustomers)
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, int64(1), summary.ProgressOrders)
	assert.Equal(t, int64(0), summary.ApprovedOrders)

	// cancelled orders are excluded from the money totals
	assert.True(t, summary.TotalSalesAmount.Equal(decimal.NewFromInt(30)),
		"expected 30, got %s", summary.TotalSalesAmount)
	assert.True(t, summary.TotalPaidAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, summary.OutstandingAmount.Equal(decimal.NewFromInt(25)))
}

func TestGormDashboardRepository_Trend_And_Ranking(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDashboardRepository(db)
	ctx := context.Background()

	paracetamol := createTestProduct(t, db, "Paracetamol 500mg", 100)
	ibuprofen := createTestProduct(t, db, "Ibuprofen 200mg", 100)

	createPersistedOrder(t, db, paracetamol, 6) // $30
	createPersistedOrder(t, db, ibuprofen, 2)   // $10

	filter := report.DashboardFilter{
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
		TopN:      5,
	}

	t.Run("daily trend groups by day", func(t *testing.T) {
		trend, err := repo.GetDailySalesTrend(ctx, filter)
		require.NoError(t, err)
		require.Len(t, trend, 1)
		assert.Equal(t, int64(2), trend[0].OrderCount)
		assert.True(t, trend[0].TotalAmount.Equal(decimal.NewFromInt(40)))
	})

	t.Run("ranking orders by amount", func(t *testing.T) {
		ranking, err := repo.GetProductSalesRanking(ctx, filter)
		require.NoError(t, err)
		require.Len(t, ranking, 2)
		assert.Equal(t, 1, ranking[0].Rank)
		assert.Equal(t, paracetamol.ID, ranking[0].ProductID)
		assert.True(t, ranking[0].TotalAmount.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, ibuprofen.ID, ranking[1].ProductID)
	})
}
