package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/report"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// GormDashboardRepository implements DashboardRepository with aggregate queries
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetSummary returns the headline counters and totals
func (r *GormDashboardRepository) GetSummary(ctx context.Context) (*report.DashboardSummary, error) {
	summary := &report.DashboardSummary{
		TotalSalesAmount:  decimal.Zero,
		TotalPaidAmount:   decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}
	db := r.db.WithContext(ctx)

	if err := db.Model(&catalog.Product{}).
		Where("status = ?", catalog.ProductStatusActive).
		Count(&summary.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&partner.Customer{}).Count(&summary.TotalCustomers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&partner.Supplier{}).Count(&summary.TotalSuppliers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&trade.SalesOrder{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}

	var statusCounts []struct {
		Status trade.OrderStatus
		Count  int64
	}
	if err := db.Model(&trade.SalesOrder{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		switch sc.Status {
		case trade.OrderStatusPending:
			summary.PendingOrders = sc.Count
		case trade.OrderStatusProgress:
			summary.ProgressOrders = sc.Count
		case trade.OrderStatusApproved:
			summary.ApprovedOrders = sc.Count
		}
	}

	if err := db.Model(&catalog.Product{}).
		Where("status = ? AND reorder_level > 0 AND stock_quantity <= reorder_level", catalog.ProductStatusActive).
		Count(&summary.LowStockProducts).Error; err != nil {
		return nil, err
	}

	var totals struct {
		TotalAmount decimal.Decimal
		PaidAmount  decimal.Decimal
	}
	if err := db.Model(&trade.SalesOrder{}).
		Select("COALESCE(SUM(total_amount), 0) as total_amount, COALESCE(SUM(paid_amount), 0) as paid_amount").
		Where("status NOT IN ?", []trade.OrderStatus{trade.OrderStatusCancelled, trade.OrderStatusRejected}).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	summary.TotalSalesAmount = totals.TotalAmount
	summary.TotalPaidAmount = totals.PaidAmount
	summary.OutstandingAmount = totals.TotalAmount.Sub(totals.PaidAmount)

	return summary, nil
}

// GetDailySalesTrend returns per-day order counts and amounts in the window
func (r *GormDashboardRepository) GetDailySalesTrend(ctx context.Context, filter report.DashboardFilter) ([]report.DailySalesTrend, error) {
	var rows []struct {
		Day         string
		OrderCount  int64
		TotalAmount decimal.Decimal
		PaidAmount  decimal.Decimal
	}

	if err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Select("DATE(created_at) as day, COUNT(*) as order_count, "+
			"COALESCE(SUM(total_amount), 0) as total_amount, COALESCE(SUM(paid_amount), 0) as paid_amount").
		Where("created_at >= ? AND created_at <= ?", filter.StartDate, filter.EndDate).
		Where("status NOT IN ?", []trade.OrderStatus{trade.OrderStatusCancelled, trade.OrderStatusRejected}).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	trend := make([]report.DailySalesTrend, 0, len(rows))
	for _, row := range rows {
		day, err := parseDay(row.Day)
		if err != nil {
			return nil, err
		}
		trend = append(trend, report.DailySalesTrend{
			Date:        day,
			OrderCount:  row.OrderCount,
			TotalAmount: row.TotalAmount,
			PaidAmount:  row.PaidAmount,
		})
	}
	return trend, nil
}

// GetProductSalesRanking returns top N products by sales amount
func (r *GormDashboardRepository) GetProductSalesRanking(ctx context.Context, filter report.DashboardFilter) ([]report.ProductSalesRanking, error) {
	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	var rows []struct {
		ProductID     uuid.UUID
		ProductName   string
		TotalQuantity decimal.Decimal
		TotalAmount   decimal.Decimal
		OrderCount    int64
	}

	if err := r.db.WithContext(ctx).
		Model(&trade.SalesOrderItem{}).
		Select("sales_order_items.product_id, sales_order_items.product_name, "+
			"COALESCE(SUM(sales_order_items.quantity), 0) as total_quantity, "+
			"COALESCE(SUM(sales_order_items.amount), 0) as total_amount, "+
			"COUNT(DISTINCT sales_order_items.order_id) as order_count").
		Joins("JOIN sales_orders ON sales_orders.id = sales_order_items.order_id").
		Where("sales_orders.created_at >= ? AND sales_orders.created_at <= ?", filter.StartDate, filter.EndDate).
		Where("sales_orders.status NOT IN ?", []trade.OrderStatus{trade.OrderStatusCancelled, trade.OrderStatusRejected}).
		Group("sales_order_items.product_id, sales_order_items.product_name").
		Order("total_amount DESC").
		Limit(topN).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ranking := make([]report.ProductSalesRanking, len(rows))
	for i, row := range rows {
		ranking[i] = report.ProductSalesRanking{
			Rank:          i + 1,
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			TotalQuantity: row.TotalQuantity,
			TotalAmount:   row.TotalAmount,
			OrderCount:    row.OrderCount,
		}
	}
	return ranking, nil
}

// parseDay handles the date formats returned by the supported dialects
func parseDay(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05Z07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Parse("2006-01-02", value[:10])
}

var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
