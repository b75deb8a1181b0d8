package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacare/backend/internal/domain/trade"
)

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID                   `json:"customer_id" binding:"required"`
	Items      []CreateSalesOrderItemInput `json:"items" binding:"required,min=1"`
	Remark     string                      `json:"remark"`
}

// CreateSalesOrderItemInput represents an item line in the create request.
// Prices are not accepted from the client; they are snapshotted from the
// product record server-side.
type CreateSalesOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// UpdateSalesOrderRequest represents a request to update a sales order
// (only allowed while pending and unreserved)
type UpdateSalesOrderRequest struct {
	Items  []CreateSalesOrderItemInput `json:"items"`
	Remark *string                     `json:"remark"`
}

// UpdateOrderStatusRequest carries an incremental payment and/or an explicit
// status override. Only rejected and cancelled may be requested explicitly;
// pending/progress/approved are always derived from the paid amount.
type UpdateOrderStatusRequest struct {
	PaymentAmount *decimal.Decimal `json:"payment_amount"`
	Status        *string          `json:"status" binding:"omitempty,oneof=rejected cancelled"`
	Reason        string           `json:"reason"`
}

// SalesOrderListFilter represents filter options for the order list
type SalesOrderListFilter struct {
	Search     string             `form:"search"`
	CustomerID *uuid.UUID         `form:"customer_id"`
	Status     *trade.OrderStatus `form:"status"`
	StartDate  *time.Time         `form:"start_date"`
	EndDate    *time.Time         `form:"end_date"`
	Page       int                `form:"page" binding:"omitempty,min=1"`
	PageSize   int                `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string             `form:"order_by"`
	OrderDir   string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	OrderNumber     string                   `json:"order_number"`
	CustomerID      uuid.UUID                `json:"customer_id"`
	CustomerName    string                   `json:"customer_name"`
	Items           []SalesOrderItemResponse `json:"items"`
	ItemCount       int                      `json:"item_count"`
	TotalQuantity   decimal.Decimal          `json:"total_quantity"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	PaidAmount      decimal.Decimal          `json:"paid_amount"`
	Balance         decimal.Decimal          `json:"balance"`
	Status          string                   `json:"status"`
	StockReserved   bool                     `json:"stock_reserved"`
	ReservedAt      *time.Time               `json:"reserved_at,omitempty"`
	StockRestoredAt *time.Time               `json:"stock_restored_at,omitempty"`
	RejectedAt      *time.Time               `json:"rejected_at,omitempty"`
	CancelledAt     *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason    string                   `json:"cancel_reason,omitempty"`
	Remark          string                   `json:"remark,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	Version         int                      `json:"version"`
}

// SalesOrderListItemResponse represents a sales order in list responses
type SalesOrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SalesOrderItemResponse represents an order item in API responses
type SalesOrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	PackageUnit   string          `json:"package_unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplierPrice decimal.Decimal `json:"supplier_price"`
	Amount        decimal.Decimal `json:"amount"`
}

// OrderStatusSummary represents order counts grouped by status
type OrderStatusSummary struct {
	Pending   int64 `json:"pending"`
	Progress  int64 `json:"progress"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// ToSalesOrderResponse converts a domain SalesOrder to a response DTO
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToSalesOrderItemResponse(&order.Items[i])
	}

	return SalesOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Items:           items,
		ItemCount:       order.ItemCount(),
		TotalQuantity:   order.TotalQuantity(),
		TotalAmount:     order.TotalAmount,
		PaidAmount:      order.PaidAmount,
		Balance:         order.Balance(),
		Status:          string(order.Status),
		StockReserved:   order.StockReserved,
		ReservedAt:      order.ReservedAt,
		StockRestoredAt: order.StockRestoredAt,
		RejectedAt:      order.RejectedAt,
		CancelledAt:     order.CancelledAt,
		CancelReason:    order.CancelReason,
		Remark:          order.Remark,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// ToSalesOrderItemResponse converts a domain item to a response DTO
func ToSalesOrderItemResponse(item *trade.SalesOrderItem) SalesOrderItemResponse {
	return SalesOrderItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		ProductName:   item.ProductName,
		PackageUnit:   string(item.PackageUnit),
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		SupplierPrice: item.SupplierPrice,
		Amount:        item.Amount,
	}
}

// ToSalesOrderListItemResponses converts domain orders to list DTOs
func ToSalesOrderListItemResponses(orders []trade.SalesOrder) []SalesOrderListItemResponse {
	responses := make([]SalesOrderListItemResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		responses[i] = SalesOrderListItemResponse{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerID:   o.CustomerID,
			CustomerName: o.CustomerName,
			ItemCount:    o.ItemCount(),
			TotalAmount:  o.TotalAmount,
			PaidAmount:   o.PaidAmount,
			Balance:      o.Balance(),
			Status:       string(o.Status),
			CreatedAt:    o.CreatedAt,
			UpdatedAt:    o.UpdatedAt,
		}
	}
	return responses
}
