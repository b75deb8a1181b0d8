package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary is a read model of the headline pharmacy figures.
// This is a CQRS read model optimized for querying.
type DashboardSummary struct {
	TotalProducts     int64           `json:"total_products"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalSuppliers    int64           `json:"total_suppliers"`
	TotalOrders       int64           `json:"total_orders"`
	PendingOrders     int64           `json:"pending_orders"`
	ProgressOrders    int64           `json:"progress_orders"`
	ApprovedOrders    int64           `json:"approved_orders"`
	LowStockProducts  int64           `json:"low_stock_products"`
	TotalSalesAmount  decimal.Decimal `json:"total_sales_amount"`
	TotalPaidAmount   decimal.Decimal `json:"total_paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// DailySalesTrend represents daily sales trend data
type DailySalesTrend struct {
	Date        time.Time       `json:"date"`
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
}

// ProductSalesRanking represents product sales ranking
type ProductSalesRanking struct {
	Rank          int             `json:"rank"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderCount    int64           `json:"order_count"`
}

// DashboardFilter defines the reporting window
type DashboardFilter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TopN      int       `json:"top_n,omitempty"` // For rankings
}

// DashboardRepository defines the interface for dashboard queries
type DashboardRepository interface {
	// GetSummary returns the headline counters and totals
	GetSummary(ctx context.Context) (*DashboardSummary, error)

	// GetDailySalesTrend returns per-day order counts and amounts in the window
	GetDailySalesTrend(ctx context.Context, filter DashboardFilter) ([]DailySalesTrend, error)

	// GetProductSalesRanking returns top N products by sales amount
	GetProductSalesRanking(ctx context.Context, filter DashboardFilter) ([]ProductSalesRanking, error)
}
