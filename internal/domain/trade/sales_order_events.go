package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacare/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderCreated         = "SalesOrderCreated"
	EventTypeSalesOrderPaymentRecorded = "SalesOrderPaymentRecorded"
	EventTypeSalesOrderApproved        = "SalesOrderApproved"
	EventTypeSalesOrderRejected        = "SalesOrderRejected"
	EventTypeSalesOrderCancelled       = "SalesOrderCancelled"
)

// SalesOrderItemInfo represents item information for events
type SalesOrderItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	PackageUnit string          `json:"package_unit"`
}

func itemInfos(order *SalesOrder) []SalesOrderItemInfo {
	items := make([]SalesOrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		items[i] = SalesOrderItemInfo{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			PackageUnit: item.PackageUnit.String(),
		}
	}
	return items
}

// SalesOrderCreatedEvent is raised when a new sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, order.ID, AggregateTypeSalesOrder),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
	}
}

// SalesOrderPaymentRecordedEvent is raised whenever an incremental payment
// is applied to an order
type SalesOrderPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

// NewSalesOrderPaymentRecordedEvent creates a new SalesOrderPaymentRecordedEvent
func NewSalesOrderPaymentRecordedEvent(order *SalesOrder, amount decimal.Decimal) *SalesOrderPaymentRecordedEvent {
	return &SalesOrderPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderPaymentRecorded, order.ID, AggregateTypeSalesOrder),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          amount,
		PaidAmount:      order.PaidAmount,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status.String(),
	}
}

// SalesOrderApprovedEvent is raised when an order becomes fully paid.
// The stock reservation is performed synchronously by the application
// service; this event drives notifications and reporting.
type SalesOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID            `json:"order_id"`
	OrderNumber  string               `json:"order_number"`
	CustomerID   uuid.UUID            `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	Items        []SalesOrderItemInfo `json:"items"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
}

// NewSalesOrderApprovedEvent creates a new SalesOrderApprovedEvent
func NewSalesOrderApprovedEvent(order *SalesOrder) *SalesOrderApprovedEvent {
	return &SalesOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderApproved, order.ID, AggregateTypeSalesOrder),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Items:           itemInfos(order),
		TotalAmount:     order.TotalAmount,
	}
}

// SalesOrderRejectedEvent is raised when an order is manually rejected.
// WasReserved indicates whether a stock reservation had to be returned.
type SalesOrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID            `json:"order_id"`
	OrderNumber string               `json:"order_number"`
	Reason      string               `json:"reason"`
	WasReserved bool                 `json:"was_reserved"`
	Items       []SalesOrderItemInfo `json:"items"`
}

// NewSalesOrderRejectedEvent creates a new SalesOrderRejectedEvent
func NewSalesOrderRejectedEvent(order *SalesOrder, wasReserved bool) *SalesOrderRejectedEvent {
	return &SalesOrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderRejected, order.ID, AggregateTypeSalesOrder),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
		WasReserved:     wasReserved,
		Items:           itemInfos(order),
	}
}

// SalesOrderCancelledEvent is raised when an order is cancelled.
// WasReserved indicates whether a stock reservation had to be returned.
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID            `json:"order_id"`
	OrderNumber string               `json:"order_number"`
	Reason      string               `json:"reason"`
	WasReserved bool                 `json:"was_reserved"`
	Items       []SalesOrderItemInfo `json:"items"`
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(order *SalesOrder, wasReserved bool) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, order.ID, AggregateTypeSalesOrder),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
		WasReserved:     wasReserved,
		Items:           itemInfos(order),
	}
}
