package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/notification"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// OrderEventHandler turns sales order lifecycle events into notifications
type OrderEventHandler struct {
	notificationRepo notification.NotificationRepository
	logger           *zap.Logger
}

// NewOrderEventHandler creates a new handler for order lifecycle events
func NewOrderEventHandler(notificationRepo notification.NotificationRepository, logger *zap.Logger) *OrderEventHandler {
	return &OrderEventHandler{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderEventHandler) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderApproved,
		trade.EventTypeSalesOrderRejected,
		trade.EventTypeSalesOrderCancelled,
	}
}

// Handle creates a notification record for the order lifecycle event
func (h *OrderEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		notificationType notification.NotificationType
		title            string
		message          string
		refID            uuid.UUID
	)

	switch e := event.(type) {
	case *trade.SalesOrderCreatedEvent:
		notificationType = notification.NotificationTypeOrderCreated
		title = "New sales order"
		message = fmt.Sprintf("Order %s created for %s", e.OrderNumber, e.CustomerName)
		refID = e.OrderID
	case *trade.SalesOrderApprovedEvent:
		notificationType = notification.NotificationTypeOrderApproved
		title = "Order fully paid"
		message = fmt.Sprintf("Order %s for %s is fully paid; stock has been reserved", e.OrderNumber, e.CustomerName)
		refID = e.OrderID
	case *trade.SalesOrderRejectedEvent:
		notificationType = notification.NotificationTypeOrderRejected
		title = "Order rejected"
		message = fmt.Sprintf("Order %s was rejected: %s", e.OrderNumber, e.Reason)
		refID = e.OrderID
	case *trade.SalesOrderCancelledEvent:
		notificationType = notification.NotificationTypeOrderCancelled
		title = "Order cancelled"
		message = fmt.Sprintf("Order %s was cancelled: %s", e.OrderNumber, e.Reason)
		refID = e.OrderID
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	n, err := notification.NewNotification(notificationType, title, message, &refID)
	if err != nil {
		return err
	}

	if err := h.notificationRepo.Save(ctx, n); err != nil {
		h.logger.Error("failed to save order notification",
			zap.String("event_type", event.EventType()),
			zap.String("order_id", refID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

var _ shared.EventHandler = (*OrderEventHandler)(nil)
