package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/notification"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// LowStockHandler raises a low-stock notification when an approved order's
// reservation drops a product to or below its reorder level. It runs after
// the reservation has been committed, so the product rows already carry the
// decremented quantities.
type LowStockHandler struct {
	productRepo      catalog.ProductRepository
	notificationRepo notification.NotificationRepository
	logger           *zap.Logger
}

// NewLowStockHandler creates a new handler for approval-driven stock alerts
func NewLowStockHandler(
	productRepo catalog.ProductRepository,
	notificationRepo notification.NotificationRepository,
	logger *zap.Logger,
) *LowStockHandler {
	return &LowStockHandler{
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{trade.EventTypeSalesOrderApproved}
}

// Handle checks every product on the approved order against its reorder level
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approvedEvent, ok := event.(*trade.SalesOrderApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	productIDs := make([]uuid.UUID, 0, len(approvedEvent.Items))
	for _, item := range approvedEvent.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := h.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		h.logger.Error("failed to load products for low stock check",
			zap.String("order_number", approvedEvent.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	for i := range products {
		product := &products[i]
		if !product.IsBelowReorderLevel() {
			continue
		}

		message := fmt.Sprintf("%s is down to %s %s (reorder level %s)",
			product.Name, product.StockQuantity.String(), product.PackageUnit, product.ReorderLevel.String())
		n, err := notification.NewNotification(notification.NotificationTypeLowStock, "Low stock alert", message, &product.ID)
		if err != nil {
			return err
		}
		if err := h.notificationRepo.Save(ctx, n); err != nil {
			h.logger.Error("failed to save low stock notification",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
			return err
		}

		h.logger.Info("low stock alert raised",
			zap.String("product", product.Name),
			zap.String("stock", product.StockQuantity.String()),
			zap.String("reorder_level", product.ReorderLevel.String()),
		)
	}

	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
