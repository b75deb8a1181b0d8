package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/report"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/trade"
	"github.com/pharmacare/backend/internal/infrastructure/cache"
)

const (
	summaryCacheKey = "dashboard:summary"
	recentOrderSize = 10
)

// DashboardService assembles the dashboard read models. The summary is
// cached with a short TTL; trend and ranking queries are always live.
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	orderRepo     trade.SalesOrderRepository
	productRepo   catalog.ProductRepository
	store         cache.Store
	ttl           time.Duration
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	dashboardRepo report.DashboardRepository,
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	store cache.Store,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		store:         store,
		ttl:           ttl,
		logger:        logger,
	}
}

// GetSummary returns the headline dashboard figures, served from cache when
// fresh. Cache failures degrade to a live query.
func (s *DashboardService) GetSummary(ctx context.Context) (*report.DashboardSummary, error) {
	if cached, err := s.store.Get(ctx, summaryCacheKey); err == nil {
		var summary report.DashboardSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	} else if err != cache.ErrCacheMiss {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	summary, err := s.dashboardRepo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.store.Set(ctx, summaryCacheKey, payload, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return summary, nil
}

// InvalidateSummary drops the cached summary, forcing the next read to query
func (s *DashboardService) InvalidateSummary(ctx context.Context) {
	if err := s.store.Delete(ctx, summaryCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// GetDailySalesTrend returns per-day order counts and amounts over the window
func (s *DashboardService) GetDailySalesTrend(ctx context.Context, filter report.DashboardFilter) ([]report.DailySalesTrend, error) {
	if filter.EndDate.IsZero() {
		filter.EndDate = time.Now()
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.AddDate(0, 0, -30)
	}
	return s.dashboardRepo.GetDailySalesTrend(ctx, filter)
}

// GetProductSalesRanking returns the top selling products in the window
func (s *DashboardService) GetProductSalesRanking(ctx context.Context, filter report.DashboardFilter) ([]report.ProductSalesRanking, error) {
	if filter.EndDate.IsZero() {
		filter.EndDate = time.Now()
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.AddDate(0, 0, -30)
	}
	return s.dashboardRepo.GetProductSalesRanking(ctx, filter)
}

// GetLowStockProducts returns active products at or under their reorder level
func (s *DashboardService) GetLowStockProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindBelowReorderLevel(ctx)
}

// GetRecentOrders returns the most recently created orders
func (s *DashboardService) GetRecentOrders(ctx context.Context) ([]trade.SalesOrder, error) {
	return s.orderRepo.FindAll(ctx, shared.Filter{
		Page:     1,
		PageSize: recentOrderSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
}
