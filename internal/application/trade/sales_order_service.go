package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new sales order. Every line is validated against the
// current product record before anything is persisted; prices are
// snapshotted server-side. Any failing line rejects the whole request.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(orderNumber, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Product %s is not active", product.Name))
		}
		if !product.HasSufficientStock(line.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		_, err = order.AddItem(
			product.ID,
			product.Name,
			product.PackageUnit,
			line.Quantity,
			product.GetUnitPriceMoney(),
			product.GetSupplierPriceMoney(),
		)
		if err != nil {
			return nil, err
		}
	}

	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a sales order by order number
func (s *SalesOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter SalesOrderListFilter) ([]SalesOrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSalesOrderListItemResponses(orders), total, nil
}

// Update edits a sales order. Only pending, unreserved orders can be
// modified. A non-nil item list replaces all existing lines, re-snapshotting
// prices from the current product records.
func (s *SalesOrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order can only be modified before payment starts")
	}

	if req.Items != nil {
		existing := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			existing[i] = item.ID
		}
		for _, itemID := range existing {
			if err := order.RemoveItem(itemID); err != nil {
				return nil, err
			}
		}

		for _, line := range req.Items {
			product, err := s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if err == shared.ErrNotFound {
					return nil, shared.NewDomainError("NOT_FOUND",
						fmt.Sprintf("Product %s not found", line.ProductID))
				}
				return nil, err
			}
			if !product.HasSufficientStock(line.Quantity) {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for %s", product.Name))
			}

			_, err = order.AddItem(
				product.ID,
				product.Name,
				product.PackageUnit,
				line.Quantity,
				product.GetUnitPriceMoney(),
				product.GetSupplierPriceMoney(),
			)
			if err != nil {
				return nil, err
			}
		}
	}

	if req.Remark != nil {
		order.SetRemark(*req.Remark)
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// UpdateStatus applies an incremental payment and/or an explicit override to
// rejected or cancelled. The status itself is always derived from the paid
// amount; a transition into approved reserves stock atomically, and a
// terminal override on a reserved order restores it exactly once. If the
// reservation fails, nothing about the order changes.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.PaymentAmount == nil && req.Status == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Either payment_amount or status must be provided")
	}

	if req.PaymentAmount != nil {
		payment := valueobject.NewMoneyUSD(*req.PaymentAmount)
		if err := order.RecordPayment(payment); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		switch trade.OrderStatus(*req.Status) {
		case trade.OrderStatusRejected:
			if err := order.Reject(req.Reason); err != nil {
				return nil, err
			}
		case trade.OrderStatusCancelled:
			if err := order.Cancel(req.Reason); err != nil {
				return nil, err
			}
		default:
			return nil, shared.NewDomainError("INVALID_STATE", "Only rejected or cancelled can be set explicitly")
		}
	}

	switch {
	case order.NeedsReservation():
		if err := order.MarkStockReserved(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithReservation(ctx, order); err != nil {
			return nil, err
		}
	case order.NeedsRestoration():
		if err := order.MarkStockRestored(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithRestore(ctx, order); err != nil {
			return nil, err
		}
	default:
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Delete deletes a sales order (only allowed while pending and unreserved)
func (s *SalesOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only unpaid pending orders can be deleted")
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// GetStatusSummary retrieves order counts grouped by status
func (s *SalesOrderService) GetStatusSummary(ctx context.Context) (*OrderStatusSummary, error) {
	summary := &OrderStatusSummary{}
	counts := []struct {
		status trade.OrderStatus
		target *int64
	}{
		{trade.OrderStatusPending, &summary.Pending},
		{trade.OrderStatusProgress, &summary.Progress},
		{trade.OrderStatusApproved, &summary.Approved},
		{trade.OrderStatusRejected, &summary.Rejected},
		{trade.OrderStatusCancelled, &summary.Cancelled},
	}

	for _, c := range counts {
		count, err := s.orderRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
		summary.Total += count
	}

	return summary, nil
}

// publishEvents publishes the order's pending domain events. Event handling
// is notification-only; failures are logged and never fail the operation.
func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil && s.logger != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		}
	}
	order.ClearDomainEvents()
}
