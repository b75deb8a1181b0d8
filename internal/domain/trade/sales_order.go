package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // created, nothing paid
	OrderStatusProgress  OrderStatus = "progress"  // partially paid
	OrderStatusApproved  OrderStatus = "approved"  // fully paid, stock reserved
	OrderStatusRejected  OrderStatus = "rejected"  // manually rejected (terminal)
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled (terminal)
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProgress, OrderStatusApproved,
		OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end the order lifecycle.
// Terminal statuses are never re-derived from payment state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusCancelled
}

// DeriveStatus computes the payment-derived status for an order.
// It is a pure function of the cumulative paid amount and the order total:
//
//	paid == 0            -> pending
//	0 < paid < total     -> progress
//	paid >= total        -> approved
//
// Terminal statuses (rejected/cancelled) are set explicitly and must never
// be passed through this derivation.
func DeriveStatus(paid, total decimal.Decimal) OrderStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return OrderStatusPending
	case paid.LessThan(total):
		return OrderStatusProgress
	default:
		return OrderStatusApproved
	}
}

// SalesOrderItem represents a line item in a sales order.
// Unit price and supplier price are snapshots taken at order time so later
// catalog changes do not retroactively alter the order.
type SalesOrderItem struct {
	ID            uuid.UUID               `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	ProductName   string                  `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	PackageUnit   valueobject.PackageUnit `gorm:"type:varchar(20);not null"`
	UnitPrice     decimal.Decimal         `gorm:"type:decimal(18,4);not null"` // selling price snapshot
	SupplierPrice decimal.Decimal         `gorm:"type:decimal(18,4);not null"` // cost snapshot
	Amount        decimal.Decimal         `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrderItem creates a new sales order item with price snapshots
func NewSalesOrderItem(orderID, productID uuid.UUID, productName string, unit valueobject.PackageUnit, quantity decimal.Decimal, unitPrice, supplierPrice valueobject.Money) (*SalesOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_PACKAGE_UNIT", fmt.Sprintf("Package unit %q is not allowed", unit))
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if supplierPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		PackageUnit:   unit,
		UnitPrice:     unitPrice.Amount(),
		SupplierPrice: supplierPrice.Amount(),
		Amount:        quantity.Mul(unitPrice.Amount()),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the amount
func (i *SalesOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// SalesOrder represents a sales order aggregate root.
// It manages the order lifecycle from creation through payment to a terminal
// state, and tracks whether product stock has been reserved for it.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID
	CustomerName string // snapshot at creation, immutable afterwards
	Items        []SalesOrderItem
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Remark       string          `gorm:"type:text"`

	// Stock reconciliation state. StockReserved flips to true exactly once
	// when the order first reaches approved, and back to false when the
	// reservation is returned on reject/cancel.
	StockReserved   bool       `gorm:"not null;default:false"`
	ReservedAt      *time.Time `json:"reserved_at,omitempty"`
	StockRestoredAt *time.Time `json:"stock_restored_at,omitempty"`

	RejectedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in pending status with nothing paid
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]SalesOrderItem, 0),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Status:            OrderStatusPending,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line item to the order. A product referenced twice produces
// two independent line items; no merging is performed.
// Only allowed while the order is still modifiable.
func (o *SalesOrder) AddItem(productID uuid.UUID, productName string, unit valueobject.PackageUnit, quantity decimal.Decimal, unitPrice, supplierPrice valueobject.Money) (*SalesOrderItem, error) {
	if !o.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items once payment or reservation has started")
	}

	item, err := NewSalesOrderItem(o.ID, productID, productName, unit, quantity, unitPrice, supplierPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing item
func (o *SalesOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items once payment or reservation has started")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items once payment or reservation has started")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// RecordPayment adds an incremental payment to the order and recomputes the
// status from the derivation rule. The increment is rejected (not clamped)
// when it would push the cumulative paid amount past the order total.
func (o *SalesOrder) RecordPayment(amount valueobject.Money) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on a %s order", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot record payment on an order without items")
	}

	newPaid := o.PaidAmount.Add(amount.Amount())
	if newPaid.GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("OVERPAYMENT",
			fmt.Sprintf("Payment of %s exceeds the remaining balance of %s",
				amount.Amount().StringFixed(2), o.Balance().StringFixed(2)))
	}

	previous := o.Status
	o.PaidAmount = newPaid
	o.Status = DeriveStatus(o.PaidAmount, o.TotalAmount)
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewSalesOrderPaymentRecordedEvent(o, amount.Amount()))
	if previous != OrderStatusApproved && o.Status == OrderStatusApproved {
		o.AddDomainEvent(NewSalesOrderApprovedEvent(o))
	}

	return nil
}

// Reject manually rejects the order. Rejection is terminal.
func (o *SalesOrder) Reject(reason string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Reject reason is required")
	}

	wasReserved := o.StockReserved
	now := time.Now()
	o.Status = OrderStatusRejected
	o.RejectedAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderRejectedEvent(o, wasReserved))

	return nil
}

// Cancel cancels the order. Cancellation is terminal; cancelling an already
// terminal order is an error, never a second stock credit.
func (o *SalesOrder) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	wasReserved := o.StockReserved
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o, wasReserved))

	return nil
}

// NeedsReservation reports whether stock must still be decremented for this order
func (o *SalesOrder) NeedsReservation() bool {
	return o.Status == OrderStatusApproved && !o.StockReserved
}

// NeedsRestoration reports whether a previous reservation must be returned
func (o *SalesOrder) NeedsRestoration() bool {
	return o.Status.IsTerminal() && o.StockReserved
}

// MarkStockReserved records that product stock was decremented for this order
func (o *SalesOrder) MarkStockReserved() error {
	if o.StockReserved {
		return shared.NewDomainError("ALREADY_RESERVED", "Stock has already been reserved for this order")
	}
	if o.Status != OrderStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Stock can only be reserved for an approved order")
	}

	now := time.Now()
	o.StockReserved = true
	o.ReservedAt = &now
	o.UpdatedAt = now

	return nil
}

// MarkStockRestored records that the reservation was credited back.
// Guarded so the credit can only be applied once per reservation.
func (o *SalesOrder) MarkStockRestored() error {
	if !o.StockReserved {
		return shared.NewDomainError("NOT_RESERVED", "No stock reservation to restore for this order")
	}

	now := time.Now()
	o.StockReserved = false
	o.StockRestoredAt = &now
	o.UpdatedAt = now

	return nil
}

// Balance returns the unpaid amount (total - paid)
func (o *SalesOrder) Balance() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// ItemCount returns the number of line items in the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *SalesOrder) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

// IsTerminal returns true if the order is rejected or cancelled
func (o *SalesOrder) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanModify returns true while items may still be changed: the order is
// pending with no payment recorded and no stock reserved
func (o *SalesOrder) CanModify() bool {
	return o.Status == OrderStatusPending && !o.StockReserved && o.PaidAmount.IsZero()
}

// GetItem returns an item by its ID
func (o *SalesOrder) GetItem(itemID uuid.UUID) *SalesOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotal recalculates the order total from its items
func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
