package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/pharmacare/backend/internal/application/report"
	"github.com/pharmacare/backend/internal/domain/report"
)

// ReportHandler handles dashboard and reporting endpoints
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Summary)
		dashboard.GET("/trend", h.SalesTrend)
		dashboard.GET("/ranking", h.ProductRanking)
		dashboard.GET("/low-stock", h.LowStock)
		dashboard.GET("/recent-orders", h.RecentOrders)
	}
}

// dashboardWindowQuery binds the optional reporting window parameters.
// When omitted the service defaults to the last 30 days.
type dashboardWindowQuery struct {
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	TopN      int        `form:"top_n" binding:"omitempty,min=1,max=100"`
}

func (q dashboardWindowQuery) toFilter() report.DashboardFilter {
	filter := report.DashboardFilter{TopN: q.TopN}
	if q.StartDate != nil {
		filter.StartDate = *q.StartDate
	}
	if q.EndDate != nil {
		filter.EndDate = *q.EndDate
	}
	return filter
}

// Summary godoc
// @Summary      Get the dashboard summary
// @Description  Headline counters and totals. Served from cache when fresh.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=report.DashboardSummary}
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// SalesTrend godoc
// @Summary      Get the daily sales trend
// @Tags         dashboard
// @Produce      json
// @Param        start_date query string false "Window start (ISO 8601)" format(date-time)
// @Param        end_date query string false "Window end (ISO 8601)" format(date-time)
// @Success      200 {object} dto.Response{data=[]report.DailySalesTrend}
// @Security     BearerAuth
// @Router       /dashboard/trend [get]
func (h *ReportHandler) SalesTrend(c *gin.Context) {
	var query dashboardWindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	trend, err := h.dashboardService.GetDailySalesTrend(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trend)
}

// ProductRanking godoc
// @Summary      Get top products by sales amount
// @Tags         dashboard
// @Produce      json
// @Param        start_date query string false "Window start (ISO 8601)" format(date-time)
// @Param        end_date query string false "Window end (ISO 8601)" format(date-time)
// @Param        top_n query int false "Number of products to return" default(10)
// @Success      200 {object} dto.Response{data=[]report.ProductSalesRanking}
// @Security     BearerAuth
// @Router       /dashboard/ranking [get]
func (h *ReportHandler) ProductRanking(c *gin.Context) {
	var query dashboardWindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	ranking, err := h.dashboardService.GetProductSalesRanking(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ranking)
}

// LowStock godoc
// @Summary      List products at or below their reorder level
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /dashboard/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	products, err := h.dashboardService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// RecentOrders godoc
// @Summary      List the most recent sales orders
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /dashboard/recent-orders [get]
func (h *ReportHandler) RecentOrders(c *gin.Context) {
	orders, err := h.dashboardService.GetRecentOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
