package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacare/backend/internal/domain/shared"
)

// NotificationType classifies what a notification is about
type NotificationType string

const (
	NotificationTypeLowStock       NotificationType = "low_stock"
	NotificationTypeOrderCreated   NotificationType = "order_created"
	NotificationTypeOrderApproved  NotificationType = "order_approved"
	NotificationTypeOrderRejected  NotificationType = "order_rejected"
	NotificationTypeOrderCancelled NotificationType = "order_cancelled"
)

// IsValid checks whether the notification type is known
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeLowStock, NotificationTypeOrderCreated,
		NotificationTypeOrderApproved, NotificationTypeOrderRejected,
		NotificationTypeOrderCancelled:
		return true
	}
	return false
}

// Notification is an in-app message produced by domain event handlers,
// e.g. a low-stock alert or an order status change.
type Notification struct {
	shared.BaseEntity
	Type    NotificationType `gorm:"type:varchar(30);not null;index"`
	Title   string           `gorm:"type:varchar(200);not null"`
	Message string           `gorm:"type:text;not null"`
	RefID   *uuid.UUID       `gorm:"type:uuid;index"` // The order or product this refers to
	Read    bool             `gorm:"not null;default:false;index"`
	ReadAt  *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new unread notification
func NewNotification(notificationType NotificationType, title, message string, refID *uuid.UUID) (*Notification, error) {
	if !notificationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type: "+string(notificationType))
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Type:       notificationType,
		Title:      title,
		Message:    message,
		RefID:      refID,
	}, nil
}

// MarkRead marks the notification as read. Marking twice is a no-op.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
