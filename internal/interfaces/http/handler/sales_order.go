package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/pharmacare/backend/internal/application/trade"
)

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// RegisterRoutes registers sales order routes on the given group
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/sales-order")
	{
		orders.POST("/add", h.Create)
		orders.GET("", h.List)
		orders.GET("/summary", h.StatusSummary)
		orders.GET("/number/:order_number", h.GetByOrderNumber)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Create a new sales order
// @Description  Create a pending sales order. Unit prices are snapshotted from the product records; the client only supplies product IDs and quantities.
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body trade.CreateSalesOrderRequest true "Sales order creation request"
// @Success      201 {object} dto.Response{data=trade.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/add [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List godoc
// @Summary      List sales orders
// @Description  Paginated order list filterable by status, customer, text search and creation date range
// @Tags         sales-orders
// @Produce      json
// @Param        search query string false "Search term (order number, customer name)"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Order status" Enums(pending, progress, approved, rejected, cancelled)
// @Param        start_date query string false "Start date (ISO 8601)" format(date-time)
// @Param        end_date query string false "End date (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]trade.SalesOrderListItemResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter tradeapp.SalesOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get sales order by ID
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=trade.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByOrderNumber godoc
// @Summary      Get sales order by order number
// @Tags         sales-orders
// @Produce      json
// @Param        order_number path string true "Order Number" example(SO-2026-00001)
// @Success      200 {object} dto.Response{data=trade.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/number/{order_number} [get]
func (h *SalesOrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Update godoc
// @Summary      Update a sales order
// @Description  Replace items and/or remark. Only allowed while the order is pending and stock has not been reserved.
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body trade.UpdateSalesOrderRequest true "Sales order update request"
// @Success      200 {object} dto.Response{data=trade.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/{id} [put]
func (h *SalesOrderHandler) Update(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Record a payment or override the order status
// @Description  Applies an incremental payment and derives the resulting status, and/or applies an explicit rejected/cancelled override. Approval reserves stock atomically; a terminal transition on a reserved order restores it.
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body trade.UpdateOrderStatusRequest true "Status update request"
// @Success      200 {object} dto.Response{data=trade.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/{id}/status [put]
func (h *SalesOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete a sales order
// @Description  Delete a sales order. Only allowed while pending and unreserved.
// @Tags         sales-orders
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-order/{id} [delete]
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// StatusSummary godoc
// @Summary      Get order counts grouped by status
// @Tags         sales-orders
// @Produce      json
// @Success      200 {object} dto.Response{data=trade.OrderStatusSummary}
// @Security     BearerAuth
// @Router       /sales-order/summary [get]
func (h *SalesOrderHandler) StatusSummary(c *gin.Context) {
	summary, err := h.orderService.GetStatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
